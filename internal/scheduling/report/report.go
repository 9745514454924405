// Package report renders monthly roster snapshots as PDF and XLSX artifacts.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
)

// SanitizeName strips a display name down to characters safe for filenames.
// Letters, digits, underscores and hyphens pass through; everything else is
// dropped.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BranchFilename names a monthly branch artifact, e.g.
// Branch_BerlinerTor_2025-03.pdf.
func BranchFilename(branchName string, month time.Time, ext string) string {
	return fmt.Sprintf("Branch_%s_%s.%s", SanitizeName(branchName), month.Format("2006-01"), ext)
}

// EmployeeFilename names a monthly employee artifact.
func EmployeeFilename(employeeName string, month time.Time, ext string) string {
	return fmt.Sprintf("Employee_%s_%s.%s", SanitizeName(employeeName), month.Format("2006-01"), ext)
}

// window is a (date, start, end) grouping key for branch reports.
type window struct {
	date  string
	start string
	end   string
}

// groupByWindow groups shifts by (date, start, end), preserving the input
// order of groups and of names within a group. Duplicate names within a group
// are collapsed.
func groupByWindow(shifts []*repository.ShiftWithNames) ([]window, map[window][]string) {
	var order []window
	names := make(map[window][]string)
	seen := make(map[window]map[string]struct{})

	for _, s := range shifts {
		w := window{
			date:  s.Date.Format("2006-01-02"),
			start: clockLabel(s.StartTime),
			end:   clockLabel(s.EndTime),
		}
		if _, ok := names[w]; !ok {
			order = append(order, w)
			seen[w] = make(map[string]struct{})
		}
		if _, dup := seen[w][s.EmployeeName]; dup {
			continue
		}
		seen[w][s.EmployeeName] = struct{}{}
		names[w] = append(names[w], s.EmployeeName)
	}

	return order, names
}

// clockLabel shortens HH:MM:SS to HH:MM for display.
func clockLabel(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
