package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	registerSheet = "Register"
	legendSheet   = "Legend"
)

var summaryHeaders = []string{
	"Present", "Late", "Paid Leave", "LOP Leave", "Unmarked", "Holidays", "Weekly Off",
	"Total LOP", "Attendance %", "Approved OT (h)", "Late (min)", "Partial",
}

var legend = [][2]string{
	{"P", "Present"},
	{"LT", "Present, late"},
	{"A", "Unmarked (counts as LOP)"},
	{"PL", "Paid leave"},
	{"LOP", "Loss of pay leave"},
	{"H", "Holiday"},
	{"WO", "Weekly off"},
	{"", "Future day"},
}

// dayCode is the one-cell marker of a classified day.
func dayCode(d attendance.DayRecord) string {
	switch d.Status {
	case attendance.StatusPresent:
		return "P"
	case attendance.StatusLate:
		return "LT"
	case attendance.StatusUnmarked:
		return "A"
	case attendance.StatusHoliday:
		return "H"
	case attendance.StatusWeekend:
		return "WO"
	case attendance.StatusLeave:
		if d.IsPaidLeave != nil && *d.IsPaidLeave {
			return "PL"
		}
		return "LOP"
	}
	return ""
}

// renderRegister lays out one row per employee: code, name, one column per
// day of the month, then the month's totals.
func renderRegister(req report.AttendanceRegisterRequest, rows []report.RegisterRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, err
	}

	days := time.Date(req.Year, time.Month(req.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	title := fmt.Sprintf("Attendance register %s %d (generated %s)",
		time.Month(req.Month), req.Year, generatedAt.UTC().Format(time.RFC3339))
	if err := f.SetCellValue(registerSheet, "A1", title); err != nil {
		return nil, err
	}

	header := []interface{}{"Code", "Name"}
	for d := 1; d <= days; d++ {
		header = append(header, d)
	}
	for _, h := range summaryHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(registerSheet, "A2", &header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		line := []interface{}{r.Employee.EmployeeCode, r.Employee.FullName}
		for d := 0; d < days; d++ {
			code := ""
			if d < len(r.Days) {
				code = dayCode(r.Days[d])
			}
			line = append(line, code)
		}
		st := r.Stats
		partial := ""
		if r.Partial {
			partial = "yes"
		}
		line = append(line,
			st.PresentDays, st.LateDays, st.PaidLeaveDays, st.LopLeaveDays, st.UnmarkedDays,
			st.HolidayDays, st.WeekendDays, st.TotalLopDays,
			st.AttendancePercentage.InexactFloat64(), st.ApprovedOvertime.InexactFloat64(),
			st.TotalLateMinutes, partial,
		)

		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(registerSheet, cell, &line); err != nil {
			return nil, err
		}
	}

	if err := styleRegister(f, days, len(header), len(rows)); err != nil {
		return nil, err
	}
	if err := writeLegend(f); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func styleRegister(f *excelize.File, days, columns, rows int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(columns, 2)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(registerSheet, "A1", lastHeader, bold); err != nil {
		return err
	}

	if rows > 0 {
		centered, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(2+days, rows+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(registerSheet, "C3", last, centered); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(registerSheet, "B", "B", 28); err != nil {
		return err
	}
	firstDay, err := excelize.ColumnNumberToName(3)
	if err != nil {
		return err
	}
	lastDay, err := excelize.ColumnNumberToName(2 + days)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(registerSheet, firstDay, lastDay, 4.5); err != nil {
		return err
	}

	return f.SetPanes(registerSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      2,
		TopLeftCell: "C3",
		ActivePane:  "bottomRight",
	})
}

func writeLegend(f *excelize.File) error {
	if _, err := f.NewSheet(legendSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(legendSheet, "A1", &[]interface{}{"Code", "Meaning"}); err != nil {
		return err
	}
	for i, l := range legend {
		row := []interface{}{l[0], l[1]}
		if err := f.SetSheetRow(legendSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(legendSheet, "B", "B", 30)
}
