// Package birthday produces the monthly birthday-benefit lists: employees of
// the two entities whose birthday falls in the month after the run date and
// who clear the service-time bar.
package birthday

import (
	"strings"
	"time"

	"hr-ops/internal/dates"
	"hr-ops/internal/roster"
)

// Reason says why a record was excluded. Exactly one reason per excluded
// record: predicates run in a fixed order and the first failure wins, so the
// log always names the record's primary disqualifier.
type Reason string

const (
	IncompleteData        Reason = "incomplete_data"
	AlreadyResigned       Reason = "already_resigned"
	IneligibleIDPattern   Reason = "ineligible_id_pattern"
	ExcludedUnit          Reason = "excluded_unit"
	InvalidBirthDate      Reason = "invalid_birth_date"
	WrongBirthMonth       Reason = "wrong_birth_month"
	InvalidHireDate       Reason = "invalid_hire_date"
	InsufficientSeniority Reason = "insufficient_seniority"
	UnknownEntity         Reason = "unknown_entity"
)

// MinSeniorityMonths is the service-time bar for the benefit (滿三個月).
const MinSeniorityMonths = 3

// Entry is one eligible employee projected into report shape.
type Entry struct {
	DepartmentCode  string
	DepartmentName  string
	EmployeeID      string
	EmployeeName    string
	BirthDate       time.Time
	HireDate        time.Time
	SeniorityMonths int
}

// Exclusion records a filtered-out row for the run log.
type Exclusion struct {
	EmployeeID string
	Name       string
	Reason     Reason
}

// Config carries the entity names and the excluded insurance units. Values
// come from the typed configuration loaded at startup.
type Config struct {
	TrendForceName string // entity "A" company-name substring
	TopologyName   string // entity "B" company-name substring
	ExcludedUnits  []string
}

// Result partitions eligible employees by entity, preserving input row order.
type Result struct {
	TrendForce []Entry
	Topology   []Entry
	Excluded   []Exclusion
}

// Filter selects employees whose birthday falls in the month after today and
// who meet all eligibility rules. Pure: same snapshot in, same lists out.
func Filter(rows []roster.Employee, today time.Time, cfg Config) Result {
	targetMonth := today.Month() + 1
	if targetMonth > 12 {
		targetMonth = 1
	}

	excluded := map[string]bool{}
	for _, u := range cfg.ExcludedUnits {
		excluded[strings.TrimSpace(u)] = true
	}

	var res Result
	for _, e := range rows {
		if reason, ok := disqualify(e, targetMonth, excluded, today); ok {
			res.Excluded = append(res.Excluded, Exclusion{EmployeeID: e.EmployeeID, Name: e.Name, Reason: reason})
			continue
		}

		entry := Entry{
			DepartmentCode:  e.DepartmentCode,
			DepartmentName:  e.DepartmentName,
			EmployeeID:      e.EmployeeID,
			EmployeeName:    e.Name,
			BirthDate:       e.BirthDate,
			HireDate:        e.HireDate,
			SeniorityMonths: dates.SeniorityMonths(e.HireDate, today),
		}

		switch {
		case strings.Contains(e.Company, cfg.TrendForceName):
			res.TrendForce = append(res.TrendForce, entry)
		case strings.Contains(e.Company, cfg.TopologyName):
			res.Topology = append(res.Topology, entry)
		default:
			// An entity we don't produce a list for: dropped, but visibly.
			res.Excluded = append(res.Excluded, Exclusion{EmployeeID: e.EmployeeID, Name: e.Name, Reason: UnknownEntity})
		}
	}
	return res
}

// disqualify evaluates the exclusion predicates in contract order. The
// resignation check runs before the id/unit checks: a separated employee is
// out regardless of what the rest of the row looks like.
func disqualify(e roster.Employee, targetMonth time.Month, excludedUnits map[string]bool, today time.Time) (Reason, bool) {
	if e.Company == "" || e.BirthDateRaw == "" || e.HireDateRaw == "" {
		return IncompleteData, true
	}
	if e.Resigned() {
		return AlreadyResigned, true
	}
	if strings.Contains(e.EmployeeID, "_") {
		return IneligibleIDPattern, true
	}
	if excludedUnits[e.InsuranceUnit] {
		return ExcludedUnit, true
	}
	if e.BirthDate.IsZero() {
		return InvalidBirthDate, true
	}
	if e.BirthDate.Month() != targetMonth {
		return WrongBirthMonth, true
	}
	if e.HireDate.IsZero() {
		return InvalidHireDate, true
	}
	if dates.SeniorityMonths(e.HireDate, today) < MinSeniorityMonths {
		return InsufficientSeniority, true
	}
	return "", false
}
