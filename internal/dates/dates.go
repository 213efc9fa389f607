package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingInput is returned when a required date is absent.
	ErrMissingInput = errors.New("dates: missing input")
	// ErrInvalidDate is returned for unparseable date strings. Callers doing
	// batch work skip the one bad record instead of aborting.
	ErrInvalidDate = errors.New("dates: invalid date")
)

// Layouts accepted from the roster export. Sheets serialize dates in a few
// different shapes depending on how the cell was entered.
var rosterLayouts = []string{
	"2006/1/2",
	"2006/01/02",
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
}

// Parse parses a roster date string. Empty input maps to ErrMissingInput so
// callers can distinguish "blank cell" from "garbage cell".
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingInput
	}
	for _, layout := range rosterLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Midnight strips the time-of-day component.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeDueDate returns the deadline for returning a signed probation review.
// If the probation end already passed, the reviewer gets 14 days from today;
// otherwise 7 days past the probation end.
func ComputeDueDate(probationEnd, today time.Time) (time.Time, error) {
	if probationEnd.IsZero() {
		return time.Time{}, ErrMissingInput
	}
	end := Midnight(probationEnd)
	now := Midnight(today)
	if now.After(end) {
		return now.AddDate(0, 0, 14), nil
	}
	return end.AddDate(0, 0, 7), nil
}

// Age returns whole years elapsed between birth and today.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// SeniorityBaseline returns the last calendar day of the month two months
// ahead of today: the payroll cutoff the birthday-benefit rule projects
// service time against (次月月底).
func SeniorityBaseline(today time.Time) time.Time {
	// Day 0 of month+3 normalizes to the last day of month+2.
	return time.Date(today.Year(), today.Month()+3, 0, 0, 0, 0, 0, today.Location())
}

// SeniorityMonths returns whole months of service between hire and the
// seniority baseline, never negative. A partial final month (baseline day-of-
// month before the hire day-of-month) does not count.
func SeniorityMonths(hire, today time.Time) int {
	baseline := SeniorityBaseline(today)
	months := (baseline.Year()-hire.Year())*12 + int(baseline.Month()) - int(hire.Month())
	if baseline.Day() < hire.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// FormatSeniorityLabel renders months of service as a human label:
// 26 -> "2年2個月", 24 -> "2年", 5 -> "5個月". Negative input yields "".
func FormatSeniorityLabel(totalMonths int) string {
	if totalMonths < 0 {
		return ""
	}
	if totalMonths < 12 {
		return fmt.Sprintf("%d個月", totalMonths)
	}
	years := totalMonths / 12
	rem := totalMonths % 12
	if rem == 0 {
		return fmt.Sprintf("%d年", years)
	}
	return fmt.Sprintf("%d年%d個月", years, rem)
}
