package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
)

func march(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func sampleShifts() []*repository.ShiftWithNames {
	return []*repository.ShiftWithNames{
		{ID: 1, EmployeeID: 1, BranchID: 1, Date: march(10), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Amira Hassan", BranchName: "BerlinerTor"},
		{ID: 2, EmployeeID: 2, BranchID: 1, Date: march(10), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Omar Khalil", BranchName: "BerlinerTor"},
		{ID: 3, EmployeeID: 1, BranchID: 1, Date: march(10), StartTime: "17:00:00", EndTime: "23:00:00", EmployeeName: "Amira Hassan", BranchName: "BerlinerTor"},
		{ID: 4, EmployeeID: 2, BranchID: 1, Date: march(11), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Omar Khalil", BranchName: "BerlinerTor"},
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BerlinerTor", "BerlinerTor"},
		{"Eiffestraße", "Eiffestraße"},
		{"Berliner Tor 12", "BerlinerTor12"},
		{"a/b\\c:d", "abcd"},
		{"shift_plan-v2", "shift_plan-v2"},
		{"...", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestFilenames(t *testing.T) {
	month := march(1)

	assert.Equal(t, "Branch_BerlinerTor_2025-03.pdf", BranchFilename("BerlinerTor", month, "pdf"))
	assert.Equal(t, "Branch_BerlinerTor12_2025-03.xlsx", BranchFilename("Berliner Tor 12", month, "xlsx"))
	assert.Equal(t, "Employee_AmiraHassan_2025-03.pdf", EmployeeFilename("Amira Hassan", month, "pdf"))
}

func TestGroupByWindow(t *testing.T) {
	order, names := groupByWindow(sampleShifts())

	require.Len(t, order, 3)
	assert.Equal(t, window{date: "2025-03-10", start: "09:00", end: "17:00"}, order[0])
	assert.Equal(t, []string{"Amira Hassan", "Omar Khalil"}, names[order[0]])
	assert.Equal(t, []string{"Amira Hassan"}, names[order[1]])
	assert.Equal(t, []string{"Omar Khalil"}, names[order[2]])
}

func TestGroupByWindowCollapsesDuplicateNames(t *testing.T) {
	shifts := []*repository.ShiftWithNames{
		{Date: march(10), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Amira Hassan"},
		{Date: march(10), StartTime: "09:00:00", EndTime: "17:00:00", EmployeeName: "Amira Hassan"},
	}

	order, names := groupByWindow(shifts)
	require.Len(t, order, 1)
	assert.Equal(t, []string{"Amira Hassan"}, names[order[0]])
}

func TestMonthlyBranchPDF(t *testing.T) {
	t.Run("renders a valid document", func(t *testing.T) {
		data, err := MonthlyBranchPDF("BerlinerTor", march(1), sampleShifts())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("renders an empty month", func(t *testing.T) {
		data, err := MonthlyBranchPDF("BerlinerTor", march(1), nil)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})
}

func TestMonthlyEmployeePDF(t *testing.T) {
	data, err := MonthlyEmployeePDF("Amira Hassan", march(1), sampleShifts()[:1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestMonthlyBranchXLSX(t *testing.T) {
	data, err := MonthlyBranchXLSX("BerlinerTor", march(1), sampleShifts())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := "2025-03"
	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Branch BerlinerTor", title)

	firstDate, err := f.GetCellValue(sheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", firstDate)

	employees, err := f.GetCellValue(sheet, "D5")
	require.NoError(t, err)
	assert.Equal(t, "Amira Hassan, Omar Khalil", employees)
}
