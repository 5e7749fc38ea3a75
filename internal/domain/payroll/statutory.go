package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ProvidentFund is rate% of basic pay, capped at the wage ceiling if set.
func ProvidentFund(basic decimal.Decimal, r Rules) decimal.Decimal {
	wage := basic
	if r.PFWageCeiling.IsPositive() && wage.GreaterThan(r.PFWageCeiling) {
		wage = r.PFWageCeiling
	}
	return wage.Mul(r.PFRate).Div(hundred).Round(2)
}

type ptSlab struct {
	upTo   int64 // inclusive monthly gross; 0 means no upper bound
	amount int64
}

// Monthly professional tax slabs keyed by state code.
var ptSlabs = map[string][]ptSlab{
	// Maharashtra
	"27": {{7500, 0}, {10000, 175}, {0, 200}},
	// Karnataka
	"29": {{24999, 0}, {0, 200}},
	// West Bengal
	"19": {{10000, 0}, {15000, 110}, {25000, 130}, {40000, 150}, {0, 200}},
	// Telangana
	"36": {{15000, 0}, {20000, 150}, {0, 200}},
}

// ProfessionalTax returns the monthly PT for gross earnings in a state.
// Maharashtra collects 300 instead of 200 in February. States without a
// table yield zero.
func ProfessionalTax(stateCode string, gross decimal.Decimal, month time.Month) decimal.Decimal {
	slabs, ok := ptSlabs[stateCode]
	if !ok {
		return decimal.Zero
	}
	for _, s := range slabs {
		if s.upTo == 0 || gross.LessThanOrEqual(decimal.NewFromInt(s.upTo)) {
			amount := s.amount
			if stateCode == "27" && amount == 200 && month == time.February {
				amount = 300
			}
			return decimal.NewFromInt(amount)
		}
	}
	return decimal.Zero
}
