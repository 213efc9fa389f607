package roster

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads sheets out of the exported master-roster workbook.
// The workbook is opened per read so a long-lived process always sees the
// latest export on disk.
type XLSXSource struct {
	Path string
}

func (s XLSXSource) Read(_ context.Context, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("roster: open %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("roster: sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("roster: sheet %q is empty", sheet)
	}
	return rows[0], rows[1:], nil
}
