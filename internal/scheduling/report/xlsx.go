package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
)

// MonthlyBranchXLSX renders one branch's month as a spreadsheet with one row
// per (date, start, end) window, matching the PDF grouping.
func MonthlyBranchXLSX(branchName string, month time.Time, shifts []*repository.ShiftWithNames) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month.Format("2006-01")
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Branch %s", branchName))
	f.SetCellValue(sheet, "A2", month.Format("January 2006"))

	headers := []string{"Date", "Start", "End", "Employees"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	f.SetCellStyle(sheet, "A4", "D4", headerStyle)

	order, names := groupByWindow(shifts)
	for i, w := range order {
		row := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), w.date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), w.start)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), w.end)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), strings.Join(names[w], ", "))
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "C", 10)
	f.SetColWidth(sheet, "D", "D", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
