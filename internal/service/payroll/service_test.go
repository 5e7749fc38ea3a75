package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	companyID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	employeeID = "9b2d3f4e-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type PayrollServiceTestSuite struct {
	suite.Suite
	repo       *mocks.PayrollRepository
	employees  *mocks.EmployeeRepository
	attendance *mocks.AttendanceService
	files      *mocks.MemoryStorage
	notifier   *mocks.NotificationService
	service    *PayrollServiceImpl
	ctx        context.Context
}

func (s *PayrollServiceTestSuite) SetupTest() {
	s.repo = new(mocks.PayrollRepository)
	s.employees = new(mocks.EmployeeRepository)
	s.attendance = new(mocks.AttendanceService)
	s.files = mocks.NewMemoryStorage()
	s.notifier = new(mocks.NotificationService)

	rules := payroll.Rules{
		OvertimeMultiplier:  d("2"),
		StandardHoursPerDay: d("8"),
		PFRate:              d("12"),
		PFWageCeiling:       d("15000"),
		ESIRate:             d("0.75"),
	}
	s.service = NewPayrollService(s.repo, s.employees, s.attendance, s.files, s.notifier, rules).(*PayrollServiceImpl)
	s.service.now = func() time.Time { return time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC) }
	s.ctx = context.Background()

	user := "user-1"
	s.employees.On("GetByID", mock.Anything, companyID, employeeID).Return(employee.Employee{
		ID:               employeeID,
		UserID:           &user,
		CompanyID:        companyID,
		EmploymentStatus: employee.EmploymentStatusActive,
	}, nil).Maybe()
}

func (s *PayrollServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.attendance.AssertExpectations(s.T())
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}

func (s *PayrollServiceTestSuite) structure() payroll.SalaryStructure {
	return payroll.SalaryStructure{
		ID:         "ss-1",
		CompanyID:  companyID,
		EmployeeID: employeeID,
		BasicPay:   d("20000"),
		HRA:        d("10000"),
	}
}

func aprilWith(stats attendance.Stats, warnings ...attendance.Warning) attendance.MonthlyAttendance {
	return attendance.MonthlyAttendance{
		EmployeeID: employeeID,
		Year:       2024,
		Month:      time.April,
		Stats:      stats,
		Warnings:   warnings,
	}
}

func (s *PayrollServiceTestSuite) TestGetPayout() {
	stats := attendance.Stats{TotalDays: 30, TotalLopDays: 3, ApprovedOvertime: d("4")}
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(s.structure(), nil)
	s.attendance.On("GetMonth", mock.Anything, companyID, employeeID, 2024, time.April).Return(aprilWith(stats), nil)

	res, err := s.service.GetPayout(s.ctx, companyID, employeeID, 2024, time.April)
	s.Require().NoError(err)
	s.True(res.Payout.LopDeduction.Equal(d("3000")))
	s.True(res.Payout.OvertimePay.Equal(d("1000")))
	s.True(res.Payout.NetPay.Equal(d("28000")))
	s.Equal(3, res.Stats.TotalLopDays)
}

func (s *PayrollServiceTestSuite) TestGetPayout_PassesWarningsThrough() {
	warning := attendance.Warning{Code: attendance.WarningStorageError, Source: "leave", Message: "leave data could not be loaded"}
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(s.structure(), nil)
	s.attendance.On("GetMonth", mock.Anything, companyID, employeeID, 2024, time.April).Return(aprilWith(attendance.Stats{}, warning), nil)

	res, err := s.service.GetPayout(s.ctx, companyID, employeeID, 2024, time.April)
	s.Require().NoError(err)
	s.Equal([]attendance.Warning{warning}, res.Warnings)
}

func (s *PayrollServiceTestSuite) TestGetPayout_NoStructure() {
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(payroll.SalaryStructure{}, payroll.ErrSalaryStructureNotFound)

	_, err := s.service.GetPayout(s.ctx, companyID, employeeID, 2024, time.April)
	s.ErrorIs(err, payroll.ErrSalaryStructureNotFound)
}

func (s *PayrollServiceTestSuite) TestUpsertSalaryStructure() {
	s.repo.On("UpsertSalaryStructure", mock.Anything, mock.MatchedBy(func(ss *payroll.SalaryStructure) bool {
		return ss.EmployeeID == employeeID && ss.BasicPay.Equal(d("25000")) && ss.Statutory.PFApplicable
	})).Return(nil)

	res, err := s.service.UpsertSalaryStructure(s.ctx, companyID, employeeID, payroll.UpsertSalaryStructureRequest{
		BasicPay:     d("25000"),
		HRA:          d("5000"),
		PFApplicable: true,
	})
	s.Require().NoError(err)
	s.True(res.MonthlySalary.Equal(d("30000")))
}

func (s *PayrollServiceTestSuite) TestUpsertSalaryStructure_Invalid() {
	_, err := s.service.UpsertSalaryStructure(s.ctx, companyID, employeeID, payroll.UpsertSalaryStructureRequest{BasicPay: d("0")})
	s.Error(err)
	s.repo.AssertNotCalled(s.T(), "UpsertSalaryStructure", mock.Anything, mock.Anything)
}

func (s *PayrollServiceTestSuite) TestGeneratePayslip_UpsertsDraftWithManualOvertime() {
	manual := d("750")
	stats := attendance.Stats{TotalDays: 30, ApprovedOvertime: d("10")}
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(s.structure(), nil)
	s.attendance.On("GetMonth", mock.Anything, companyID, employeeID, 2024, time.April).Return(aprilWith(stats), nil)
	s.repo.On("UpsertDraftPayslip", mock.Anything, mock.MatchedBy(func(p *payroll.Payslip) bool {
		return p.Status == payroll.PayslipStatusDraft && p.Payout.OvertimeIsManual && p.Payout.OvertimePay.Equal(d("750"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*payroll.Payslip).ID = "slip-1"
	}).Return(nil)

	res, err := s.service.GeneratePayslip(s.ctx, companyID, payroll.GeneratePayslipRequest{
		EmployeeID:        employeeID,
		Year:              2024,
		Month:             4,
		ManualOvertimePay: &manual,
	})
	s.Require().NoError(err)
	s.Equal("slip-1", res.ID)
	s.True(res.Payout.NetPay.Equal(d("30750")))
}

func (s *PayrollServiceTestSuite) TestGeneratePayslip_FutureMonth() {
	_, err := s.service.GeneratePayslip(s.ctx, companyID, payroll.GeneratePayslipRequest{EmployeeID: employeeID, Year: 2024, Month: 6})
	s.ErrorIs(err, payroll.ErrFuturePeriod)
}

func (s *PayrollServiceTestSuite) TestGeneratePayslip_RefusesPartialAttendance() {
	warning := attendance.Warning{Code: attendance.WarningStorageError, Source: "attendance"}
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(s.structure(), nil)
	s.attendance.On("GetMonth", mock.Anything, companyID, employeeID, 2024, time.April).Return(aprilWith(attendance.Stats{}, warning), nil)

	_, err := s.service.GeneratePayslip(s.ctx, companyID, payroll.GeneratePayslipRequest{EmployeeID: employeeID, Year: 2024, Month: 4})
	s.ErrorIs(err, payroll.ErrAttendanceIncomplete)
	s.repo.AssertNotCalled(s.T(), "UpsertDraftPayslip", mock.Anything, mock.Anything)
}

func (s *PayrollServiceTestSuite) TestGeneratePayslip_Finalized() {
	s.repo.On("GetSalaryStructure", mock.Anything, companyID, employeeID).Return(s.structure(), nil)
	s.attendance.On("GetMonth", mock.Anything, companyID, employeeID, 2024, time.April).Return(aprilWith(attendance.Stats{}), nil)
	s.repo.On("UpsertDraftPayslip", mock.Anything, mock.Anything).Return(payroll.ErrPayslipAlreadyFinalized)

	_, err := s.service.GeneratePayslip(s.ctx, companyID, payroll.GeneratePayslipRequest{EmployeeID: employeeID, Year: 2024, Month: 4})
	s.ErrorIs(err, payroll.ErrPayslipAlreadyFinalized)
}

func (s *PayrollServiceTestSuite) TestFinalizePayslip_ArchivesAndNotifies() {
	draft := payroll.Payslip{
		ID:         "slip-1",
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Year:       2024,
		Month:      4,
		Status:     payroll.PayslipStatusDraft,
		Payout:     payroll.Payout{NetPay: d("28000")},
	}
	s.repo.On("GetPayslipByID", mock.Anything, companyID, "slip-1").Return(draft, nil)
	s.repo.On("FinalizePayslip", mock.Anything, mock.MatchedBy(func(p *payroll.Payslip) bool {
		return p.DocumentKey != nil && *p.FinalizedBy == "hr-1"
	})).Return(nil)

	res, err := s.service.FinalizePayslip(s.ctx, companyID, "hr-1", "slip-1")
	s.Require().NoError(err)
	s.Equal(payroll.PayslipStatusFinalized, res.Status)

	key := "payslips/" + companyID + "/2024/slip-1.json"
	s.Contains(s.files.Objects, key)
	s.Require().NotNil(res.DocumentURL)
	s.Equal("memory://"+key, *res.DocumentURL)

	s.Require().Len(s.notifier.Queued, 1)
	s.Equal(notification.TypePayslipFinalized, s.notifier.Queued[0].Type)
	s.Equal("user-1", s.notifier.Queued[0].RecipientID)
	s.Contains(s.notifier.Queued[0].Message, "April 2024")
}

func (s *PayrollServiceTestSuite) TestFinalizePayslip_AlreadyFinalized() {
	s.repo.On("GetPayslipByID", mock.Anything, companyID, "slip-1").
		Return(payroll.Payslip{ID: "slip-1", Status: payroll.PayslipStatusFinalized}, nil)

	_, err := s.service.FinalizePayslip(s.ctx, companyID, "hr-1", "slip-1")
	s.ErrorIs(err, payroll.ErrPayslipAlreadyFinalized)
	s.Empty(s.files.Objects)
}

func (s *PayrollServiceTestSuite) TestGetPayslip_NotFound() {
	s.repo.On("GetPayslipByID", mock.Anything, companyID, "missing").Return(payroll.Payslip{}, payroll.ErrPayslipNotFound)

	_, err := s.service.GetPayslip(s.ctx, companyID, "missing")
	s.ErrorIs(err, payroll.ErrPayslipNotFound)
}

func (s *PayrollServiceTestSuite) TestListPayslips() {
	s.repo.On("ListPayslips", mock.Anything, companyID, mock.MatchedBy(func(f payroll.PayslipFilter) bool {
		return f.Year != nil && *f.Year == 2024 && f.Status != nil && *f.Status == payroll.PayslipStatusDraft
	})).Return([]payroll.Payslip{{ID: "a"}, {ID: "b"}}, nil)

	res, err := s.service.ListPayslips(s.ctx, companyID, payroll.ListPayslipsRequest{Year: 2024, Status: "draft"})
	s.Require().NoError(err)
	s.Len(res, 2)
}

func (s *PayrollServiceTestSuite) TestListPayslips_RepoError() {
	s.repo.On("ListPayslips", mock.Anything, companyID, mock.Anything).Return(nil, errors.New("boom"))

	_, err := s.service.ListPayslips(s.ctx, companyID, payroll.ListPayslipsRequest{})
	s.ErrorContains(err, "failed to list payslips")
}
