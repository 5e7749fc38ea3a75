package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/mocks"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	companyID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	employeeID = "9b2d3f4e-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
	userID     = "user-1"
)

func day(d int) dateutil.Date { return dateutil.New(2024, time.March, d) }

func at(d, hour, minute int) *time.Time {
	t := time.Date(2024, time.March, d, hour, minute, 0, 0, time.UTC)
	return &t
}

func hours(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type AttendanceServiceTestSuite struct {
	suite.Suite
	tx          *mocks.Transactor
	attendances *mocks.AttendanceRepository
	overtimes   *mocks.OvertimeRepository
	employees   *mocks.EmployeeRepository
	leaves      *mocks.LeaveRepository
	calendars   *mocks.CalendarService
	notifier    *mocks.NotificationService
	service     *AttendanceServiceImpl
	ctx         context.Context
	march       dateutil.Range
}

func (s *AttendanceServiceTestSuite) SetupTest() {
	s.tx = &mocks.Transactor{}
	s.attendances = new(mocks.AttendanceRepository)
	s.overtimes = new(mocks.OvertimeRepository)
	s.employees = new(mocks.EmployeeRepository)
	s.leaves = new(mocks.LeaveRepository)
	s.calendars = new(mocks.CalendarService)
	s.notifier = new(mocks.NotificationService)

	policy := attendance.ShiftPolicy{
		Location:         time.UTC,
		ShiftStartHour:   9,
		LateGraceMinutes: 10,
		StandardDayHours: decimal.NewFromInt(8),
	}
	s.service = NewAttendanceService(s.tx, s.attendances, s.overtimes, s.employees, s.leaves, s.calendars, s.notifier, policy).(*AttendanceServiceImpl)
	s.service.now = func() time.Time { return *at(10, 12, 0) }
	s.ctx = context.Background()
	s.march = dateutil.MonthRange(2024, time.March)

	user := userID
	s.employees.On("GetByID", mock.Anything, companyID, employeeID).Return(employee.Employee{
		ID:               employeeID,
		UserID:           &user,
		CompanyID:        companyID,
		Category:         employee.CategoryStaff,
		EmploymentStatus: employee.EmploymentStatusActive,
	}, nil).Maybe()
}

func (s *AttendanceServiceTestSuite) TearDownTest() {
	s.attendances.AssertExpectations(s.T())
	s.overtimes.AssertExpectations(s.T())
	s.leaves.AssertExpectations(s.T())
	s.calendars.AssertExpectations(s.T())
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (s *AttendanceServiceTestSuite) marchCalendar() calendar.Resolution {
	res := calendar.EmptyResolution()
	for _, d := range []int{2, 3, 9, 10} {
		res.Weekends[day(d)] = struct{}{}
	}
	res.Holidays[day(8)] = calendar.Day{Date: day(8), Type: calendar.DayTypeHoliday, Name: "Maha Shivaratri"}
	return res
}

func (s *AttendanceServiceTestSuite) TestGetMonth_ClassifiesAndAggregates() {
	s.attendances.On("ListByEmployee", mock.Anything, companyID, employeeID, s.march).Return([]attendance.Attendance{
		{ID: "a1", EmployeeID: employeeID, Date: day(1), CheckIn: at(1, 9, 0), CheckOut: at(1, 18, 0), TotalHours: hours("9"), OvertimeHours: hours("1"), Status: attendance.RawStatusCheckedOut},
		{ID: "a4", EmployeeID: employeeID, Date: day(4), CheckIn: at(4, 9, 20), IsLate: true, LateMinutes: 20, Status: attendance.RawStatusCheckedIn},
	}, nil)
	s.overtimes.On("ListByEmployee", mock.Anything, companyID, employeeID, s.march).Return([]attendance.OvertimeRequest{
		{ID: "o1", EmployeeID: employeeID, Date: day(1), Hours: decimal.NewFromInt(1), Status: attendance.OvertimeApproved},
	}, nil)
	s.leaves.On("ListApproved", mock.Anything, companyID, employeeID, s.march).Return([]leave.Application{
		{ID: "l1", LeaveType: "casual", StartDate: day(5), EndDate: day(6), TotalDays: 2, PaidDays: 1, LopDays: 1, Status: leave.StatusApproved},
	}, nil)
	s.calendars.On("Resolve", mock.Anything, companyID, calendar.CompanyScope(), s.march).Return(s.marchCalendar(), nil)

	res, err := s.service.GetMonth(s.ctx, companyID, employeeID, 2024, time.March)
	s.Require().NoError(err)
	s.Len(res.Days, 31)
	s.Empty(res.Warnings)
	s.False(res.Partial())

	st := res.Stats
	s.Equal(31, st.TotalDays)
	s.Equal(2, st.PresentDays)
	s.Equal(1, st.LateDays)
	s.Equal(4, st.WeekendDays)
	s.Equal(1, st.HolidayDays)
	s.Equal(1, st.PaidLeaveDays)
	s.Equal(1, st.LopLeaveDays)
	s.Equal(1, st.UnmarkedDays)
	s.Equal(21, st.FutureDays)
	s.Equal(2, st.TotalLopDays)
	s.True(st.AttendancePercentage.Equal(decimal.RequireFromString("93.55")), st.AttendancePercentage.String())
	s.True(st.ApprovedOvertime.Equal(decimal.NewFromInt(1)))
	s.Equal(20, st.TotalLateMinutes)

	s.Equal(attendance.StatusHoliday, res.Days[7].Status)
	s.Equal(attendance.StatusUnmarked, res.Days[6].Status)
}

func (s *AttendanceServiceTestSuite) TestGetMonth_DegradesWithWarnings() {
	officer := "0f8fad5b-d9cb-469f-a165-70867728950e"
	s.employees.On("GetByID", mock.Anything, companyID, officer).Return(employee.Employee{
		ID:               officer,
		CompanyID:        companyID,
		Category:         employee.CategoryOfficer,
		EmploymentStatus: employee.EmploymentStatusActive,
	}, nil)

	s.attendances.On("ListByEmployee", mock.Anything, companyID, officer, s.march).Return(nil, errors.New("connection reset"))
	s.overtimes.On("ListByEmployee", mock.Anything, companyID, officer, s.march).Return([]attendance.OvertimeRequest{}, nil)
	s.leaves.On("ListApproved", mock.Anything, companyID, officer, s.march).Return([]leave.Application{}, nil)
	s.calendars.On("Resolve", mock.Anything, companyID, calendar.InstitutionScope(""), s.march).
		Return(calendar.EmptyResolution(), calendar.ErrMissingScope)

	res, err := s.service.GetMonth(s.ctx, companyID, officer, 2024, time.March)
	s.Require().NoError(err)
	s.Len(res.Days, 31)
	s.True(res.Partial())

	codes := map[string]string{}
	for _, w := range res.Warnings {
		codes[w.Source] = w.Code
	}
	s.Equal(attendance.WarningStorageError, codes["attendance"])
	s.Equal(attendance.WarningMissingScope, codes["calendar"])
	// Nothing loaded: every past day is unmarked.
	s.Equal(10, res.Stats.UnmarkedDays)
}

func (s *AttendanceServiceTestSuite) TestGetMonth_ReportsLeaveOverlap() {
	s.attendances.On("ListByEmployee", mock.Anything, companyID, employeeID, s.march).Return([]attendance.Attendance{}, nil)
	s.overtimes.On("ListByEmployee", mock.Anything, companyID, employeeID, s.march).Return([]attendance.OvertimeRequest{}, nil)
	s.leaves.On("ListApproved", mock.Anything, companyID, employeeID, s.march).Return([]leave.Application{
		{ID: "l1", LeaveType: "casual", StartDate: day(4), EndDate: day(6), TotalDays: 3, PaidDays: 3, Status: leave.StatusApproved},
		{ID: "l2", LeaveType: "sick", StartDate: day(6), EndDate: day(7), TotalDays: 2, PaidDays: 0, LopDays: 2, Status: leave.StatusApproved},
	}, nil)
	s.calendars.On("Resolve", mock.Anything, companyID, calendar.CompanyScope(), s.march).Return(calendar.EmptyResolution(), nil)

	res, err := s.service.GetMonth(s.ctx, companyID, employeeID, 2024, time.March)
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Equal(attendance.WarningLeaveOverlap, res.Warnings[0].Code)
	s.False(res.Partial())
	s.Equal("sick", *res.Days[5].LeaveType)
}

func (s *AttendanceServiceTestSuite) TestGetMonth_InvalidMonth() {
	_, err := s.service.GetMonth(s.ctx, companyID, employeeID, 2024, time.Month(13))
	s.Error(err)
}

func (s *AttendanceServiceTestSuite) TestGetMonth_EmployeeNotFound() {
	s.employees.On("GetByID", mock.Anything, companyID, "missing").Return(employee.Employee{}, employee.ErrEmployeeNotFound)

	_, err := s.service.GetMonth(s.ctx, companyID, "missing", 2024, time.March)
	s.ErrorIs(err, employee.ErrEmployeeNotFound)
}

func (s *AttendanceServiceTestSuite) TestBackfill_CreatesOnlyMissing() {
	rng := dateutil.Range{Start: day(1), End: day(7)}
	records := []attendance.Attendance{
		{CompanyID: companyID, EmployeeID: employeeID, Date: day(1), OvertimeHours: hours("1.5")},
		{CompanyID: companyID, EmployeeID: employeeID, Date: day(2), OvertimeHours: hours("2")},
		{CompanyID: companyID, EmployeeID: employeeID, Date: day(3), OvertimeHours: hours("0")},
	}
	existing := []attendance.OvertimeRequest{{EmployeeID: employeeID, Date: day(1), Status: attendance.OvertimeApproved}}

	s.attendances.On("ListByEmployee", mock.Anything, companyID, employeeID, rng).Return(records, nil)
	s.overtimes.On("ListByEmployee", mock.Anything, companyID, employeeID, rng).Return(existing, nil)
	s.overtimes.On("InsertMissing", mock.Anything, mock.MatchedBy(func(reqs []attendance.OvertimeRequest) bool {
		return len(reqs) == 1 && reqs[0].Date == day(2) && reqs[0].Status == attendance.OvertimePending
	})).Return([]attendance.OvertimeRequest{
		{ID: "o2", CompanyID: companyID, EmployeeID: employeeID, Date: day(2), Hours: decimal.NewFromInt(2), Status: attendance.OvertimePending},
	}, nil)

	res, err := s.service.BackfillOvertimeRequests(s.ctx, companyID, employeeID, rng)
	s.Require().NoError(err)
	s.Equal(3, res.Scanned)
	s.Require().Len(res.Created, 1)
	s.Equal("o2", res.Created[0].ID)

	s.Require().Len(s.notifier.Queued, 1)
	s.Equal(notification.TypeOvertimeRequested, s.notifier.Queued[0].Type)
	s.Equal(userID, s.notifier.Queued[0].RecipientID)
}

func (s *AttendanceServiceTestSuite) TestBackfill_NothingMissing() {
	rng := dateutil.Range{Start: day(1), End: day(7)}
	s.attendances.On("ListByEmployee", mock.Anything, companyID, employeeID, rng).Return([]attendance.Attendance{
		{EmployeeID: employeeID, Date: day(1), OvertimeHours: hours("1")},
	}, nil)
	s.overtimes.On("ListByEmployee", mock.Anything, companyID, employeeID, rng).Return([]attendance.OvertimeRequest{
		{EmployeeID: employeeID, Date: day(1), Status: attendance.OvertimeRejected},
	}, nil)

	res, err := s.service.BackfillOvertimeRequests(s.ctx, companyID, employeeID, rng)
	s.Require().NoError(err)
	s.Empty(res.Created)
	s.overtimes.AssertNotCalled(s.T(), "InsertMissing", mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestBackfillCompany() {
	rng := dateutil.Range{Start: day(1), End: day(7)}
	s.attendances.On("ListByCompany", mock.Anything, companyID, rng).Return([]attendance.Attendance{
		{CompanyID: companyID, EmployeeID: "e1", Date: day(1), OvertimeHours: hours("1")},
		{CompanyID: companyID, EmployeeID: "e2", Date: day(1), OvertimeHours: hours("3")},
	}, nil)
	s.overtimes.On("ListByCompany", mock.Anything, companyID, rng).Return([]attendance.OvertimeRequest{}, nil)
	s.employees.On("GetActiveByCompanyID", mock.Anything, companyID).Return(nil, errors.New("timeout"))
	s.overtimes.On("InsertMissing", mock.Anything, mock.Anything).Return([]attendance.OvertimeRequest{
		{ID: "o1", EmployeeID: "e1", Date: day(1)},
		{ID: "o2", EmployeeID: "e2", Date: day(1)},
	}, nil)

	res, err := s.service.BackfillCompany(s.ctx, companyID, rng)
	s.Require().NoError(err)
	s.Len(res.Created, 2)
	// Recipients are unknown without the employee list.
	s.Empty(s.notifier.Queued)
}

func (s *AttendanceServiceTestSuite) TestBackfill_InvalidRange() {
	_, err := s.service.BackfillCompany(s.ctx, companyID, dateutil.Range{Start: day(7), End: day(1)})
	s.ErrorIs(err, dateutil.ErrInvalidRange)
}

func (s *AttendanceServiceTestSuite) TestCheckIn_CreatesLateRow() {
	s.service.now = func() time.Time { return *at(11, 9, 30) }
	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(11)).
		Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)
	s.attendances.On("Create", mock.Anything, mock.MatchedBy(func(a *attendance.Attendance) bool {
		return a.IsLate && a.LateMinutes == 30 && a.Status == attendance.RawStatusCheckedIn && a.Date == day(11)
	})).Return(nil)

	res, err := s.service.CheckIn(s.ctx, companyID, employeeID)
	s.Require().NoError(err)
	s.True(res.IsLate)
	s.Equal(30, res.LateMinutes)
}

func (s *AttendanceServiceTestSuite) TestCheckIn_WithinGrace() {
	s.service.now = func() time.Time { return *at(11, 9, 5) }
	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(11)).
		Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)
	s.attendances.On("Create", mock.Anything, mock.MatchedBy(func(a *attendance.Attendance) bool {
		return !a.IsLate && a.LateMinutes == 0
	})).Return(nil)

	_, err := s.service.CheckIn(s.ctx, companyID, employeeID)
	s.Require().NoError(err)
}

func (s *AttendanceServiceTestSuite) TestCheckIn_AlreadyCheckedIn() {
	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(10)).
		Return(attendance.Attendance{ID: "a1", CheckIn: at(10, 9, 0)}, nil)

	_, err := s.service.CheckIn(s.ctx, companyID, employeeID)
	s.ErrorIs(err, attendance.ErrAlreadyCheckedIn)
}

func (s *AttendanceServiceTestSuite) TestCheckOut_CreatesOvertimeRequest() {
	s.service.now = func() time.Time { return *at(10, 18, 30) }
	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(10)).
		Return(attendance.Attendance{ID: "a1", CompanyID: companyID, EmployeeID: employeeID, Date: day(10), CheckIn: at(10, 8, 0), Status: attendance.RawStatusCheckedIn}, nil)
	s.attendances.On("Update", mock.Anything, mock.MatchedBy(func(a *attendance.Attendance) bool {
		return a.TotalHours.Equal(decimal.RequireFromString("10.5")) && a.OvertimeHours.Equal(decimal.RequireFromString("2.5"))
	})).Return(nil)
	s.overtimes.On("InsertMissing", mock.Anything, mock.MatchedBy(func(reqs []attendance.OvertimeRequest) bool {
		return len(reqs) == 1 && reqs[0].Hours.Equal(decimal.RequireFromString("2.5"))
	})).Return([]attendance.OvertimeRequest{{ID: "o1", CompanyID: companyID, EmployeeID: employeeID, Date: day(10)}}, nil)

	res, err := s.service.CheckOut(s.ctx, companyID, employeeID)
	s.Require().NoError(err)
	s.Equal(attendance.RawStatusCheckedOut, res.Status)
	s.Equal(1, s.tx.Calls)
	s.Len(s.notifier.Queued, 1)
}

func (s *AttendanceServiceTestSuite) TestCheckOut_Errors() {
	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(10)).
		Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound).Once()
	_, err := s.service.CheckOut(s.ctx, companyID, employeeID)
	s.ErrorIs(err, attendance.ErrNotCheckedIn)

	s.attendances.On("GetByEmployeeDate", mock.Anything, companyID, employeeID, day(10)).
		Return(attendance.Attendance{CheckIn: at(10, 9, 0), CheckOut: at(10, 11, 0)}, nil).Once()
	_, err = s.service.CheckOut(s.ctx, companyID, employeeID)
	s.ErrorIs(err, attendance.ErrAlreadyCheckedOut)
}

func (s *AttendanceServiceTestSuite) TestCorrect_FlagsRow() {
	s.attendances.On("GetByID", mock.Anything, companyID, "a1").
		Return(attendance.Attendance{ID: "a1", CompanyID: companyID, EmployeeID: employeeID, Date: day(4), CheckIn: at(4, 11, 0), IsLate: true, LateMinutes: 120}, nil)
	s.attendances.On("Update", mock.Anything, mock.MatchedBy(func(a *attendance.Attendance) bool {
		return a.IsCorrected && *a.CorrectedBy == "manager-1" && !a.IsLate &&
			a.TotalHours.Equal(decimal.NewFromInt(8)) && a.OvertimeHours.IsZero()
	})).Return(nil)

	res, err := s.service.Correct(s.ctx, companyID, "manager-1", "a1", attendance.CorrectionRequest{
		CheckIn:  "2024-03-04T09:00:00Z",
		CheckOut: "2024-03-04T17:00:00Z",
		Reason:   "biometric device offline",
	})
	s.Require().NoError(err)
	s.True(res.IsCorrected)
	s.overtimes.AssertNotCalled(s.T(), "InsertMissing", mock.Anything, mock.Anything)
}

func (s *AttendanceServiceTestSuite) TestReviewOvertime_ApproveWithHours() {
	s.overtimes.On("GetByID", mock.Anything, companyID, "o1").
		Return(attendance.OvertimeRequest{ID: "o1", CompanyID: companyID, EmployeeID: employeeID, Date: day(1), Hours: decimal.NewFromInt(3), Status: attendance.OvertimePending}, nil)
	s.overtimes.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(o *attendance.OvertimeRequest) bool {
		return o.Status == attendance.OvertimeApproved && o.Hours.Equal(decimal.NewFromInt(2)) && *o.ReviewedBy == "manager-1"
	})).Return(nil)

	h := "2"
	res, err := s.service.ReviewOvertime(s.ctx, companyID, "manager-1", "o1", attendance.ReviewOvertimeRequest{Status: "approved", Hours: &h})
	s.Require().NoError(err)
	s.Equal(attendance.OvertimeApproved, res.Status)
	s.Require().Len(s.notifier.Queued, 1)
	s.Equal(notification.TypeOvertimeReviewed, s.notifier.Queued[0].Type)
}

func (s *AttendanceServiceTestSuite) TestReviewOvertime_AlreadyReviewed() {
	s.overtimes.On("GetByID", mock.Anything, companyID, "o1").
		Return(attendance.OvertimeRequest{ID: "o1", Status: attendance.OvertimeRejected}, nil)

	_, err := s.service.ReviewOvertime(s.ctx, companyID, "manager-1", "o1", attendance.ReviewOvertimeRequest{Status: "approved"})
	s.ErrorIs(err, attendance.ErrOvertimeAlreadyReviewed)
}
