package recruitment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeLedger(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("編碼紀錄"); err != nil {
		t.Fatal(err)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("編碼紀錄", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSXSerialStore(t *testing.T) {
	path := writeLedger(t, [][]any{
		{"拓墣科技_正職_114", 7},
		{"集邦科技_非正職_114", 900},
	})
	store := XLSXSerialStore{Path: path, Sheet: "編碼紀錄"}
	ctx := context.Background()

	up, _ := RuleFor("拓墣科技", TypeRegular, onboarding())
	n, err := store.Next(ctx, up)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 8 {
		t.Errorf("serial = %d, want 8", n)
	}

	down, _ := RuleFor("集邦科技", TypeNonRegular, onboarding())
	n, err = store.Next(ctx, down)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 899 {
		t.Errorf("descending serial = %d, want 899", n)
	}

	// The step must be persisted, not just returned.
	n, err = store.Next(ctx, up)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 9 {
		t.Errorf("second serial = %d, want 9", n)
	}

	missing, _ := RuleFor("新報科技", TypeRegular, onboarding())
	if _, err := store.Next(ctx, missing); err == nil {
		t.Error("missing rule should fail, not invent a serial")
	}
}
