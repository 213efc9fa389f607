package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"hr-ops/internal/roster"
)

var contactHeader = []string{"部門", "員工姓名", "員工Email", "投保單位名稱", "員工代號"}

// BuildContactBook renders the monthly contact book workbook: one tab for
// the 集邦/拓墣 units, one for everyone else, active employees only. Tab
// names come from configuration (tabs[0] main, tabs[1] other); missing
// entries fall back to derived names. Returns the xlsx bytes ready to
// attach to the boss mail or drop on the archive.
func BuildContactBook(rows []roster.Employee, trendForceName, topologyName string, tabs []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	mainTab := trendForceName + "、" + topologyName + "通訊錄"
	otherTab := "其他"
	if len(tabs) > 0 && tabs[0] != "" {
		mainTab = tabs[0]
	}
	if len(tabs) > 1 && tabs[1] != "" {
		otherTab = tabs[1]
	}

	var main, other []roster.Employee
	for _, e := range rows {
		if e.Resigned() {
			continue
		}
		if strings.Contains(e.Company, trendForceName) || strings.Contains(e.Company, topologyName) {
			main = append(main, e)
		} else {
			other = append(other, e)
		}
	}

	if err := writeContactSheet(f, mainTab, main); err != nil {
		return nil, err
	}
	if err := writeContactSheet(f, otherTab, other); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("report: delete default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: write contact book: %w", err)
	}
	return buf.Bytes(), nil
}

func writeContactSheet(f *excelize.File, name string, rows []roster.Employee) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("report: new sheet %q: %w", name, err)
	}
	for i, h := range contactHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for r, e := range rows {
		values := []string{e.Department, e.Name, e.Email, e.InsuranceUnit, e.EmployeeID}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
