package roster

import (
	"context"
	"fmt"

	"hr-ops/internal/dates"
)

// Required logical fields for loading employees. The header text each one
// maps to comes from configuration (ROSTER_COLUMN_NAMES).
var employeeFields = []string{
	"employeeId", "employeeName", "department", "departmentCode",
	"departmentName", "company", "insuranceUnit", "dob", "hireDate",
	"endDate", "email",
}

// LoadEmployees reads a sheet and maps every data row into an Employee.
// Date cells that fail to parse leave the parsed field zero; the raw string
// is kept so downstream rules can classify the failure per record. A missing
// header is a structural error and aborts the load.
func LoadEmployees(ctx context.Context, src Source, sheet string, columns map[string]string) ([]Employee, error) {
	headers, rows, err := src.Read(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("roster: read %q: %w", sheet, err)
	}

	want := make(map[string]string, len(employeeFields))
	for _, f := range employeeFields {
		header, ok := columns[f]
		if !ok {
			return nil, fmt.Errorf("roster: no header configured for field %q", f)
		}
		want[f] = header
	}
	idx, err := ResolveColumns(headers, want)
	if err != nil {
		return nil, err
	}

	out := make([]Employee, 0, len(rows))
	for _, row := range rows {
		e := Employee{
			EmployeeID:     cell(row, idx["employeeId"]),
			Name:           cell(row, idx["employeeName"]),
			Department:     cell(row, idx["department"]),
			DepartmentCode: cell(row, idx["departmentCode"]),
			DepartmentName: cell(row, idx["departmentName"]),
			Company:        cell(row, idx["company"]),
			InsuranceUnit:  cell(row, idx["insuranceUnit"]),
			Email:          cell(row, idx["email"]),
			BirthDateRaw:   cell(row, idx["dob"]),
			HireDateRaw:    cell(row, idx["hireDate"]),
			EndDateRaw:     cell(row, idx["endDate"]),
		}
		if t, err := dates.Parse(e.BirthDateRaw); err == nil {
			e.BirthDate = t
		}
		if t, err := dates.Parse(e.HireDateRaw); err == nil {
			e.HireDate = t
		}
		if t, err := dates.Parse(e.EndDateRaw); err == nil {
			e.EndDate = t
		}
		out = append(out, e)
	}
	return out, nil
}
