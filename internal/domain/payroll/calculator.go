package payroll

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

type PayoutInput struct {
	Stats     attendance.Stats
	Structure SalaryStructure
	Rules     Rules
	Year      int
	Month     time.Month
	// ManualOvertimePay replaces the computed overtime pay when set.
	ManualOvertimePay *decimal.Decimal
}

// ComputePayout derives every pay figure of a month:
//
//	perDaySalary  = monthlySalary / daysInMonth
//	lopDeduction  = perDaySalary * totalLopDays
//	overtimePay   = approvedOvertime * hourlyRate * multiplier
//	grossEarnings = components + overtimePay
//	netPay        = grossEarnings - (lop + pf + esi + pt)
//
// Arithmetic is decimal; every amount is rounded to 2 places and netPay is
// derived from the rounded amounts so the payslip always adds up.
func ComputePayout(in PayoutInput) Payout {
	days := dateutil.DaysInMonth(in.Year, in.Month)
	monthly := in.Structure.MonthlySalary()
	perDay := monthly.Div(decimal.NewFromInt(int64(days)))

	lopDays := in.Stats.TotalLopDays
	if lopDays > days {
		lopDays = days
	}
	lopDeduction := perDay.Mul(decimal.NewFromInt(int64(lopDays))).Round(2)

	hourly := hourlyRate(in.Structure, in.Rules, perDay)
	multiplier := in.Rules.OvertimeMultiplier
	if in.Structure.OvertimeMultiplier != nil {
		multiplier = *in.Structure.OvertimeMultiplier
	}

	p := Payout{
		Year:                  in.Year,
		Month:                 in.Month,
		DaysInMonth:           days,
		MonthlySalary:         monthly.Round(2),
		PerDaySalary:          perDay.Round(2),
		TotalLopDays:          lopDays,
		LopDeduction:          lopDeduction,
		HourlyRate:            hourly.Round(2),
		OvertimeMultiplier:    multiplier,
		ApprovedOvertimeHours: in.Stats.ApprovedOvertime,
	}

	if in.ManualOvertimePay != nil {
		p.OvertimePay = in.ManualOvertimePay.Round(2)
		p.OvertimeIsManual = true
	} else {
		p.OvertimePay = in.Stats.ApprovedOvertime.Mul(hourly).Mul(multiplier).Round(2)
	}

	s := in.Structure
	p.Earnings = []Component{
		{Name: "Basic Pay", Amount: s.BasicPay.Round(2)},
		{Name: "HRA", Amount: s.HRA.Round(2)},
		{Name: "Conveyance Allowance", Amount: s.ConveyanceAllowance.Round(2)},
		{Name: "Special Allowance", Amount: s.SpecialAllowance.Round(2)},
		{Name: "Other Allowances", Amount: s.OtherAllowances.Round(2)},
		{Name: "Overtime", Amount: p.OvertimePay},
	}
	gross := decimal.Zero
	for _, c := range p.Earnings {
		gross = gross.Add(c.Amount)
	}
	p.GrossEarnings = gross

	st := s.Statutory
	p.PFDeduction = decimal.Zero
	p.ESIDeduction = decimal.Zero
	p.ProfessionalTax = decimal.Zero
	if st.PFApplicable {
		p.PFDeduction = ProvidentFund(s.BasicPay, in.Rules)
	}
	if st.ESIApplicable {
		p.ESIDeduction = gross.Mul(in.Rules.ESIRate).Div(hundred).Round(2)
	}
	if st.PTApplicable {
		p.ProfessionalTax = ProfessionalTax(st.PTStateCode, gross, in.Month)
	}

	p.TotalDeductions = decimal.Sum(p.LopDeduction, p.PFDeduction, p.ESIDeduction, p.ProfessionalTax)
	p.NetPay = p.GrossEarnings.Sub(p.TotalDeductions)
	if p.NetPay.IsNegative() {
		p.NetPay = decimal.Zero
	}
	return p
}

func hourlyRate(s SalaryStructure, r Rules, perDay decimal.Decimal) decimal.Decimal {
	if s.HourlyRate != nil {
		return *s.HourlyRate
	}
	if !r.StandardHoursPerDay.IsPositive() {
		return decimal.Zero
	}
	return perDay.Div(r.StandardHoursPerDay)
}
