package probation

import (
	"context"
	"strings"

	"hr-ops/internal/dates"
	"hr-ops/internal/roster"
)

// DefaultColumns maps the probation tracking fields to their sheet headers.
var DefaultColumns = map[string]string{
	"employeeID":    "員工代號",
	"employeeName":  "員工姓名",
	"department":    "部門",
	"managerName":   "直屬主管",
	"managerEmail":  "主管Email",
	"employeeEmail": "員工Email",
	"probationEnd":  "試用截止日",
	"status":        "通知信狀態",
}

// LoadRecords reads the probation tracking sheet. Every row comes back,
// pending or not; Process does the status filtering so a run can report
// how many rows it skipped.
func LoadRecords(ctx context.Context, src roster.Source, sheet string, columns map[string]string) ([]Record, error) {
	headers, rows, err := src.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}
	idx, err := roster.ResolveColumns(headers, columns)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		r := Record{
			EmployeeID:      cell(row, idx["employeeID"]),
			EmployeeName:    cell(row, idx["employeeName"]),
			Department:      cell(row, idx["department"]),
			ManagerName:     cell(row, idx["managerName"]),
			ManagerEmail:    cell(row, idx["managerEmail"]),
			EmployeeEmail:   cell(row, idx["employeeEmail"]),
			Status:          cell(row, idx["status"]),
			ProbationEndRaw: cell(row, idx["probationEnd"]),
		}
		if t, err := dates.Parse(r.ProbationEndRaw); err == nil {
			r.ProbationEnd = t
		}
		records = append(records, r)
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
