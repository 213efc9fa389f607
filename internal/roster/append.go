package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXAppender writes new records into the workbook. Cells are keyed by
// header name so the row lands in the right columns regardless of sheet
// layout; headers the map doesn't mention stay blank.
type XLSXAppender struct {
	Path string
}

func (a XLSXAppender) AppendRow(_ context.Context, sheet string, cells map[string]string) error {
	f, err := excelize.OpenFile(a.Path)
	if err != nil {
		return fmt.Errorf("roster: open %s: %w", a.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("roster: sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("roster: sheet %q has no header row", sheet)
	}

	next := len(rows) + 1
	written := 0
	for i, h := range rows[0] {
		v, ok := cells[strings.TrimSpace(h)]
		if !ok || v == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, next)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		written++
	}
	if written == 0 {
		return fmt.Errorf("roster: sheet %q has none of the record's columns", sheet)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("roster: save %s: %w", a.Path, err)
	}
	return nil
}
