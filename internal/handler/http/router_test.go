package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/auth"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/mocks"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/jwt"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret   = "test-secret-key-for-jwt"
	testCompany  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	managerUser  = "0f8fad5b-d9cb-469f-a165-70867728950e"
	employeeUser = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	employeeID   = "6ec0bd7f-11c0-43da-975e-2a8ad9ebae0b"
	otherEmpID   = "9b2f6c1e-3d4a-4e5f-8a7b-1c2d3e4f5a6b"
)

type RouterSuite struct {
	suite.Suite
	jwt          jwt.Service
	calendar     *mocks.CalendarService
	attendance   *mocks.AttendanceService
	leave        *mocks.LeaveService
	payroll      *mocks.PayrollService
	invoice      *mocks.InvoiceService
	report       *mocks.ReportService
	notification *mocks.NotificationService
	router       http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.jwt = jwt.NewJWTService(testSecret, "1h")
	s.calendar = new(mocks.CalendarService)
	s.attendance = new(mocks.AttendanceService)
	s.leave = new(mocks.LeaveService)
	s.payroll = new(mocks.PayrollService)
	s.invoice = new(mocks.InvoiceService)
	s.report = new(mocks.ReportService)
	s.notification = new(mocks.NotificationService)

	s.router = NewRouter(RouterConfig{
		AppName:        "lms-test",
		Version:        "test",
		Env:            "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       slog.LevelError,
	}, s.jwt, Handlers{
		Calendar:     NewCalendarHandler(s.calendar),
		Attendance:   NewAttendanceHandler(s.attendance),
		Leave:        NewLeaveHandler(s.leave),
		Payroll:      NewPayrollHandler(s.payroll),
		Invoice:      NewInvoiceHandler(s.invoice),
		Report:       NewReportHandler(s.report),
		Notification: NewNotificationHandler(s.notification, s.jwt),
	})
}

func (s *RouterSuite) token(p auth.Principal) string {
	token, _, err := s.jwt.GenerateAccessToken(p)
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) managerToken() string {
	return s.token(auth.Principal{UserID: managerUser, CompanyID: testCompany, Role: auth.RoleManager})
}

func (s *RouterSuite) employeeToken() string {
	id := employeeID
	return s.token(auth.Principal{UserID: employeeUser, CompanyID: testCompany, EmployeeID: &id, Role: auth.RoleEmployee})
}

func (s *RouterSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decode(rec *httptest.ResponseRecorder) response.Response {
	var res response.Response
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func (s *RouterSuite) TestRejectsMissingToken() {
	rec := s.do(http.MethodGet, "/api/v1/leaves", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestRejectsSSETokenAsAccessToken() {
	token, _, err := s.jwt.GenerateSSEToken(managerUser, testCompany)
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/v1/leaves", token, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestEmployeeCannotReachManagerRoutes() {
	rec := s.do(http.MethodPost, "/api/v1/invoices/preview", s.employeeToken(), map[string]string{})
	s.Equal(http.StatusForbidden, rec.Code)
	s.invoice.AssertNotCalled(s.T(), "Preview", mock.Anything, mock.Anything)
}

func (s *RouterSuite) TestGetMonth_EmployeeSeesOnlyThemselves() {
	s.attendance.On("GetMonth", mock.Anything, testCompany, employeeID, 2024, time.March).
		Return(attendance.MonthlyAttendance{EmployeeID: employeeID, Year: 2024, Month: time.March}, nil)

	rec := s.do(http.MethodGet, "/api/v1/attendance/employees/"+employeeID+"/month?year=2024&month=3", s.employeeToken(), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.True(s.decode(rec).Success)

	rec = s.do(http.MethodGet, "/api/v1/attendance/employees/"+otherEmpID+"/month?year=2024&month=3", s.employeeToken(), nil)
	s.Equal(http.StatusForbidden, rec.Code)
	s.attendance.AssertNumberOfCalls(s.T(), "GetMonth", 1)
}

func (s *RouterSuite) TestGetMonth_BadQuery() {
	rec := s.do(http.MethodGet, "/api/v1/attendance/employees/"+employeeID+"/month?year=abc&month=3", s.managerToken(), nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestCheckIn_UsesTokenEmployee() {
	s.attendance.On("CheckIn", mock.Anything, testCompany, employeeID).
		Return(attendance.AttendanceResponse{ID: "att-1", EmployeeID: employeeID}, nil)

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-in", s.employeeToken(), nil)
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/check-in", s.managerToken(), nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestCheckIn_Conflict() {
	s.attendance.On("CheckIn", mock.Anything, testCompany, employeeID).
		Return(attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn)

	rec := s.do(http.MethodPost, "/api/v1/attendance/check-in", s.employeeToken(), nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterSuite) TestBackfill_MonthRange() {
	rng := dateutil.MonthRange(2024, time.February)
	s.attendance.On("BackfillOvertimeRequests", mock.Anything, testCompany, employeeID, rng).
		Return(attendance.BackfillResult{Scanned: 29}, nil)

	rec := s.do(http.MethodPost, "/api/v1/attendance/employees/"+employeeID+"/overtime/backfill?year=2024&month=2", s.managerToken(), nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance/employees/"+employeeID+"/overtime/backfill?year=2024&month=13", s.managerToken(), nil)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.attendance.AssertNumberOfCalls(s.T(), "BackfillOvertimeRequests", 1)
}

func (s *RouterSuite) TestCreateLeave() {
	body := leave.CreateLeaveRequest{EmployeeID: employeeID, LeaveType: "casual", StartDate: "2024-03-04", EndDate: "2024-03-05"}
	s.leave.On("CreateApproved", mock.Anything, testCompany, managerUser, body).
		Return(leave.ApplicationResponse{ID: "leave-1", EmployeeID: employeeID}, nil)

	rec := s.do(http.MethodPost, "/api/v1/leaves", s.managerToken(), body)
	s.Equal(http.StatusCreated, rec.Code)
	s.leave.AssertExpectations(s.T())
}

func (s *RouterSuite) TestCreateLeave_Errors() {
	rec := s.do(http.MethodPost, "/api/v1/leaves", s.managerToken(), "{not json")
	s.Equal(http.StatusBadRequest, rec.Code)

	var verrs validator.ValidationErrors
	verrs.Add("leave_type", "leave_type is required")
	s.leave.On("CreateApproved", mock.Anything, testCompany, managerUser, mock.Anything).
		Return(leave.ApplicationResponse{}, verrs).Once()
	rec = s.do(http.MethodPost, "/api/v1/leaves", s.managerToken(), leave.CreateLeaveRequest{EmployeeID: employeeID})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("leave_type is required", s.decode(rec).Error.Details["leave_type"])

	s.leave.On("CreateApproved", mock.Anything, testCompany, managerUser, mock.Anything).
		Return(leave.ApplicationResponse{}, leave.ErrOverlappingLeave).Once()
	rec = s.do(http.MethodPost, "/api/v1/leaves", s.managerToken(), leave.CreateLeaveRequest{EmployeeID: employeeID})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterSuite) TestListLeaves_EmployeeFilterIsForced() {
	s.leave.On("List", mock.Anything, testCompany, leave.ListLeaveRequest{EmployeeID: employeeID}).
		Return([]leave.ApplicationResponse{{ID: "leave-1"}}, nil)

	rec := s.do(http.MethodGet, "/api/v1/leaves?employee_id="+otherEmpID, s.employeeToken(), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.leave.AssertExpectations(s.T())
}

func (s *RouterSuite) TestGetPayslip_OtherEmployeeForbidden() {
	s.payroll.On("GetPayslip", mock.Anything, testCompany, "slip-1").
		Return(payroll.PayslipResponse{ID: "slip-1", EmployeeID: otherEmpID}, nil)

	rec := s.do(http.MethodGet, "/api/v1/payroll/payslips/slip-1", s.employeeToken(), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/payroll/payslips/slip-1", s.managerToken(), nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestFinalizePayslip_Conflict() {
	s.payroll.On("FinalizePayslip", mock.Anything, testCompany, managerUser, "slip-1").
		Return(payroll.PayslipResponse{}, payroll.ErrPayslipAlreadyFinalized)

	rec := s.do(http.MethodPost, "/api/v1/payroll/payslips/slip-1/finalize", s.managerToken(), nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *RouterSuite) TestGeneratePayslip_IncompleteAttendance() {
	s.payroll.On("GeneratePayslip", mock.Anything, testCompany, mock.Anything).
		Return(payroll.PayslipResponse{}, fmt.Errorf("%w: 2024-04", payroll.ErrAttendanceIncomplete))

	rec := s.do(http.MethodPost, "/api/v1/payroll/payslips", s.managerToken(), map[string]interface{}{
		"employee_id": employeeID,
		"year":        2024,
		"month":       4,
	})
	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), "retry later")
}

func (s *RouterSuite) TestInvoiceErrors() {
	s.invoice.On("Get", mock.Anything, testCompany, "inv-1").Return(invoice.InvoiceResponse{}, invoice.ErrInvoiceNotFound)
	s.invoice.On("Cancel", mock.Anything, testCompany, "inv-2").Return(invoice.InvoiceResponse{}, invoice.ErrInvoicePaid)
	s.invoice.On("Issue", mock.Anything, testCompany, managerUser, "inv-3").Return(invoice.InvoiceResponse{}, errors.New("connection reset"))

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/v1/invoices/inv-1", s.managerToken(), nil).Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/v1/invoices/inv-2/cancel", s.managerToken(), nil).Code)
	s.Equal(http.StatusInternalServerError, s.do(http.MethodPost, "/api/v1/invoices/inv-3/issue", s.managerToken(), nil).Code)
}

func (s *RouterSuite) TestAttendanceRegisterDownload() {
	content := []byte("PK fake workbook")
	s.report.On("AttendanceRegister", mock.Anything, testCompany, report.AttendanceRegisterRequest{Year: 2024, Month: 2}).
		Return(report.File{Name: "attendance-register-2024-02.xlsx", ContentType: report.ContentTypeXLSX, Content: content}, nil)

	rec := s.do(http.MethodGet, "/api/v1/reports/attendance-register?year=2024&month=2", s.managerToken(), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(report.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	s.Contains(rec.Header().Get("Content-Disposition"), "attendance-register-2024-02.xlsx")
	s.Equal(content, rec.Body.Bytes())
}

func (s *RouterSuite) TestNotifications() {
	s.notification.On("List", mock.Anything, testCompany, employeeUser, notification.ListNotificationsRequest{Limit: 5, Unread: true}).
		Return(notification.NotificationListResponse{UnreadCount: 2}, nil)
	s.notification.On("MarkAsRead", mock.Anything, testCompany, employeeUser, mock.Anything).
		Return(notification.ErrNotificationNotFound)

	rec := s.do(http.MethodGet, "/api/v1/notifications?limit=5&unread_only=true", s.employeeToken(), nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/notifications/read", s.employeeToken(), notification.MarkAsReadRequest{NotificationIDs: []string{otherEmpID}})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestNotificationStream() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/notifications/stream", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/notifications/stream?token="+s.managerToken(), "", nil).Code)

	ch := make(chan notification.SSEEvent, 1)
	ch <- notification.SSEEvent{Event: "notification", Data: notification.NotificationResponse{ID: "n1", Title: "Payslip ready"}}
	close(ch)
	var events <-chan notification.SSEEvent = ch
	s.notification.On("Subscribe", mock.Anything, testCompany, employeeUser).Return(events)

	rec := s.do(http.MethodPost, "/api/v1/notifications/sse-token", s.employeeToken(), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	data, ok := s.decode(rec).Data.(map[string]interface{})
	s.Require().True(ok)
	sseToken, _ := data["token"].(string)

	rec = s.do(http.MethodGet, "/api/v1/notifications/stream?token="+sseToken, "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	s.True(strings.HasPrefix(body, "event: connected\n"))
	s.Contains(body, "event: notification\ndata: {\"id\":\"n1\"")
}
