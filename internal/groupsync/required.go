package groupsync

import (
	"time"

	"hr-ops/internal/dates"
	"hr-ops/internal/roster"
)

// RequiredMembers groups the emails of employees active on the given day by
// department. Active means hired on or before today and either no resignation
// date or one that is today or later. Rows without an email, start date, or
// department are skipped.
func RequiredMembers(rows []roster.Employee, today time.Time) map[string]map[string]bool {
	day := dates.Midnight(today)

	out := map[string]map[string]bool{}
	for _, e := range rows {
		if e.Email == "" || e.HireDate.IsZero() || e.Department == "" {
			continue
		}
		if e.HireDate.After(day) {
			continue
		}
		if !e.EndDate.IsZero() && e.EndDate.Before(day) {
			continue
		}
		set := out[e.Department]
		if set == nil {
			set = map[string]bool{}
			out[e.Department] = set
		}
		set[Normalize(e.Email)] = true
	}
	return out
}
