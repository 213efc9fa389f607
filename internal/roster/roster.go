package roster

import (
	"context"
	"time"
)

// Employee is one row of the master roster (員工總控制表). Raw cell values are
// kept next to the parsed dates: the filter predicates need to distinguish a
// blank cell from one that failed to parse.
type Employee struct {
	EmployeeID     string
	Name           string
	Department     string
	DepartmentCode string
	DepartmentName string
	Company        string
	InsuranceUnit  string
	Email          string

	BirthDateRaw string
	HireDateRaw  string
	EndDateRaw   string

	BirthDate time.Time // zero when blank or unparseable
	HireDate  time.Time
	EndDate   time.Time
}

// Resigned reports whether the row carries a resignation date. Any non-blank
// value counts, even one that does not parse: a filled cell means the person
// has been separated.
func (e Employee) Resigned() bool {
	return e.EndDateRaw != ""
}

// Source is a read-only bulk fetch of a named sheet: header row plus data
// rows. Reads are fresh on every run; nothing is cached between runs.
type Source interface {
	Read(ctx context.Context, sheet string) (headers []string, rows [][]string, err error)
}

// StaticSource serves fixed rows. Test double and offline snapshot reader.
type StaticSource struct {
	Headers []string
	Rows    [][]string
	Err     error
}

func (s StaticSource) Read(_ context.Context, _ string) ([]string, [][]string, error) {
	return s.Headers, s.Rows, s.Err
}
