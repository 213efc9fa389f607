// Package recruitment handles the onboarding offer flow: employee-ID
// assignment from the per-company serial ledger, the offer letter, and the
// offer mail with its verification code.
package recruitment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Employment types as they appear on the recruitment form.
const (
	TypeRegular    = "正職"
	TypeNonRegular = "非正職"
)

// IDRule describes how one company/type/year pool assigns IDs. Each pool has
// its own row in the serial ledger; 非正職 pools count downward so temporary
// IDs never collide with the ascending regular ones.
type IDRule struct {
	Name       string // ledger key, e.g. 拓墣科技_正職_114
	Prefix     string
	Pad        int // zero-pad width of the serial, 0 = none
	Descending bool
}

// RuleFor derives the ID rule from the company, employment type, and the
// onboarding date's ROC year.
func RuleFor(company, employeeType string, onboarding time.Time) (IDRule, error) {
	rocYear := onboarding.Year() - 1911
	r := IDRule{
		Name:       fmt.Sprintf("%s_%s_%d", company, employeeType, rocYear),
		Descending: employeeType == TypeNonRegular,
	}
	switch company {
	case "集邦科技", "荃富科技":
		r.Prefix = strconv.Itoa(rocYear)
	case "拓墣科技":
		r.Prefix = "EM"
		r.Pad = 4
	case "新報科技":
		r.Prefix = fmt.Sprintf("TN%d", rocYear)
		r.Pad = 3
	default:
		return IDRule{}, fmt.Errorf("recruitment: 無效的公司別: %q", company)
	}
	return r, nil
}

// Format renders an assigned serial as the final employee ID.
func (r IDRule) Format(serial int) string {
	if r.Pad > 0 {
		return fmt.Sprintf("%s%0*d", r.Prefix, r.Pad, serial)
	}
	return r.Prefix + strconv.Itoa(serial)
}

// SerialStore advances a rule's serial and persists it. Next returns the
// serial to use, already stepped in the rule's direction.
type SerialStore interface {
	Next(ctx context.Context, rule IDRule) (int, error)
}

// NewEmployeeID assigns the next ID in the pool the candidate belongs to.
func NewEmployeeID(ctx context.Context, store SerialStore, company, employeeType string, onboarding time.Time) (string, error) {
	rule, err := RuleFor(company, employeeType, onboarding)
	if err != nil {
		return "", err
	}
	serial, err := store.Next(ctx, rule)
	if err != nil {
		return "", err
	}
	return rule.Format(serial), nil
}

// MemSerialStore is the in-memory store used by tests and dry runs.
type MemSerialStore struct {
	mu      sync.Mutex
	Serials map[string]int
}

func (s *MemSerialStore) Next(_ context.Context, rule IDRule) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.Serials[rule.Name]
	if !ok {
		return 0, fmt.Errorf("recruitment: 在編碼紀錄中找不到規則: %s", rule.Name)
	}
	next := cur + 1
	if rule.Descending {
		next = cur - 1
	}
	s.Serials[rule.Name] = next
	return next, nil
}

// XLSXSerialStore keeps the ledger in a worksheet: rule name in column A,
// current serial in column B. The workbook is rewritten on every step, so a
// crashed run never hands out the same serial twice.
type XLSXSerialStore struct {
	Path  string
	Sheet string
}

func (s XLSXSerialStore) Next(_ context.Context, rule IDRule) (int, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("recruitment: open ledger %s: %w", s.Path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.Sheet)
	if err != nil {
		return 0, fmt.Errorf("recruitment: ledger sheet %q: %w", s.Sheet, err)
	}

	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) != rule.Name {
			continue
		}
		if len(row) < 2 {
			return 0, fmt.Errorf("recruitment: 規則 %s 缺少序號欄", rule.Name)
		}
		cur, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return 0, fmt.Errorf("recruitment: 規則 %s 的序號不是數字: %q", rule.Name, row[1])
		}
		next := cur + 1
		if rule.Descending {
			next = cur - 1
		}
		cell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(s.Sheet, cell, next); err != nil {
			return 0, err
		}
		if err := f.Save(); err != nil {
			return 0, fmt.Errorf("recruitment: save ledger: %w", err)
		}
		return next, nil
	}
	return 0, fmt.Errorf("recruitment: 在編碼紀錄中找不到規則: %s", rule.Name)
}
