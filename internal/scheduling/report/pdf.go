package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
)

const (
	pdfMarginMM    = 15
	pdfLineHeight  = 7
	pdfHeaderSize  = 16
	pdfSectionSize = 12
	pdfBodySize    = 10
)

// MonthlyBranchPDF renders one branch's month as a PDF. Shifts sharing a
// (date, start, end) window are printed as one row listing every employee on
// that window, in the order the snapshot delivers them.
func MonthlyBranchPDF(branchName string, month time.Time, shifts []*repository.ShiftWithNames) ([]byte, error) {
	doc := newDoc(fmt.Sprintf("Branch %s", branchName), month)

	if len(shifts) == 0 {
		doc.SetFont("Helvetica", "I", pdfBodySize)
		doc.CellFormat(0, pdfLineHeight, "No shifts scheduled this month.", "", 1, "L", false, 0, "")
		return render(doc)
	}

	order, names := groupByWindow(shifts)

	var lastDate string
	for _, w := range order {
		if w.date != lastDate {
			lastDate = w.date
			doc.Ln(2)
			doc.SetFont("Helvetica", "B", pdfSectionSize)
			doc.CellFormat(0, pdfLineHeight, w.date, "", 1, "L", false, 0, "")
		}
		doc.SetFont("Helvetica", "", pdfBodySize)
		line := fmt.Sprintf("%s - %s: %s", w.start, w.end, strings.Join(names[w], ", "))
		doc.MultiCell(0, pdfLineHeight-1, line, "", "L", false)
	}

	return render(doc)
}

// MonthlyEmployeePDF renders one employee's month as a PDF, one row per shift
// grouped under date headers.
func MonthlyEmployeePDF(employeeName string, month time.Time, shifts []*repository.ShiftWithNames) ([]byte, error) {
	doc := newDoc(employeeName, month)

	if len(shifts) == 0 {
		doc.SetFont("Helvetica", "I", pdfBodySize)
		doc.CellFormat(0, pdfLineHeight, "No shifts scheduled this month.", "", 1, "L", false, 0, "")
		return render(doc)
	}

	var lastDate string
	for _, s := range shifts {
		date := s.Date.Format("2006-01-02")
		if date != lastDate {
			lastDate = date
			doc.Ln(2)
			doc.SetFont("Helvetica", "B", pdfSectionSize)
			doc.CellFormat(0, pdfLineHeight, date, "", 1, "L", false, 0, "")
		}
		doc.SetFont("Helvetica", "", pdfBodySize)
		line := fmt.Sprintf("%s - %s  @ %s", clockLabel(s.StartTime), clockLabel(s.EndTime), s.BranchName)
		doc.CellFormat(0, pdfLineHeight-1, line, "", 1, "L", false, 0, "")
	}

	return render(doc)
}

func newDoc(title string, month time.Time) *fpdf.Fpdf {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	doc.SetAutoPageBreak(true, pdfMarginMM)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", pdfHeaderSize)
	doc.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", pdfSectionSize)
	doc.CellFormat(0, 8, month.Format("January 2006"), "", 1, "L", false, 0, "")
	doc.Ln(2)

	return doc
}

func render(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
