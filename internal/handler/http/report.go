package http

import (
	"net/http"
	"strconv"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly attendance register (.xlsx)
	GetAttendanceRegister(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetAttendanceRegister handles GET /reports/attendance-register
func (h *reportHandlerImpl) GetAttendanceRegister(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	year, month, ok := yearMonth(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.AttendanceRegister(r.Context(), p.CompanyID, report.AttendanceRegisterRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
