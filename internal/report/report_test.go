package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"hr-ops/internal/birthday"
	"hr-ops/internal/roster"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBirthdayDocName(t *testing.T) {
	tests := []struct {
		today time.Time
		want  string
	}{
		{day(2025, 6, 15), "集邦2507壽星"},
		{day(2025, 12, 20), "集邦2601壽星"},
		{day(2025, 9, 1), "集邦2510壽星"},
	}
	for _, tt := range tests {
		if got := BirthdayDocName("集邦", tt.today); got != tt.want {
			t.Errorf("BirthdayDocName(%v) = %q, want %q", tt.today, got, tt.want)
		}
	}
}

func TestBuildBirthdayArtifacts(t *testing.T) {
	res := birthday.Result{
		TrendForce: []birthday.Entry{{
			DepartmentCode:  "RD01",
			DepartmentName:  "研發一部",
			EmployeeID:      "A123",
			EmployeeName:    "王小明",
			BirthDate:       day(1990, 7, 20),
			HireDate:        day(2023, 1, 3),
			SeniorityMonths: 31,
		}},
	}
	arts := BuildBirthdayArtifacts(res, "集邦", "拓墣", day(2025, 6, 15))
	if len(arts) != 1 {
		t.Fatalf("expected one artifact, got %d", len(arts))
	}
	a := arts[0]
	if a.Name != "集邦2507壽星" {
		t.Errorf("name = %q", a.Name)
	}
	for _, want := range []string{
		"集邦科技股份有限公司", "2025年7月", "王小明", "07/20", "合  計： 1 人",
	} {
		if !strings.Contains(a.HTML, want) {
			t.Errorf("artifact HTML missing %q", want)
		}
	}
	// Age at run date: born 1990-07-20, today 2025-06-15 -> 34.
	if !strings.Contains(a.HTML, "<td>34</td>") {
		t.Error("artifact HTML missing age column")
	}
}

func TestBirthdayApprovalMail(t *testing.T) {
	arts := []Artifact{{Entity: "集邦", Name: "集邦2507壽星"}}
	subject, body := BirthdayApprovalMail(arts, "http://x/approval?action=approve&token=t1", "http://x/approval?action=reject&token=t1")
	if subject != "【審核】每月壽星生日禮金名單" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "action=approve&token=t1") || !strings.Contains(body, "action=reject&token=t1") {
		t.Error("body must carry both action links")
	}
	if !strings.Contains(body, "集邦2507壽星") {
		t.Error("body must list the previewed artifacts")
	}
}

func TestReportMonth(t *testing.T) {
	y, m := ReportMonth(day(2025, 8, 1))
	if y != 2025 || m != time.July {
		t.Errorf("got %d-%v, want 2025-July", y, m)
	}
	y, m = ReportMonth(day(2025, 1, 10))
	if y != 2024 || m != time.December {
		t.Errorf("got %d-%v, want 2024-December", y, m)
	}
}

func TestBuildMovement(t *testing.T) {
	rows := []roster.Employee{
		{EmployeeID: "H1", Name: "新人", HireDate: day(2025, 7, 7)},
		{EmployeeID: "H2", Name: "快閃", HireDate: day(2025, 7, 1), EndDate: day(2025, 7, 20), EndDateRaw: "2025/7/20"},
		{EmployeeID: "D1", Name: "老兵", HireDate: day(2020, 1, 1), EndDate: day(2025, 7, 31), EndDateRaw: "2025/7/31"},
		{EmployeeID: "X1", Name: "無關", HireDate: day(2025, 6, 1)},
	}
	m := BuildMovement(rows, 2025, time.July)

	if len(m.NewHires) != 2 {
		t.Errorf("NewHires = %d, want 2", len(m.NewHires))
	}
	if len(m.Departures) != 2 {
		t.Errorf("Departures = %d, want 2", len(m.Departures))
	}
	// H2 joined and left inside the month: boss list drops them.
	if len(m.BossHires) != 1 || m.BossHires[0].EmployeeID != "H1" {
		t.Errorf("BossHires = %+v", m.BossHires)
	}
}

func TestBossMailNoMovement(t *testing.T) {
	_, body := BossMail(Movement{Year: 2025, Month: time.July}, "Kevin")
	if !strings.Contains(body, "無人員異動") {
		t.Error("empty month should say so")
	}
}

func TestInsuranceMailKeepsFullHireList(t *testing.T) {
	m := BuildMovement([]roster.Employee{
		{EmployeeID: "H2", Name: "快閃", InsuranceUnit: "集邦科技", HireDate: day(2025, 7, 1), EndDate: day(2025, 7, 20), EndDateRaw: "2025/7/20"},
	}, 2025, time.July)

	_, body := InsuranceMail(m, "Elsie")
	if strings.Count(body, "快閃") != 2 {
		t.Error("same-month hire+leave must appear in both insurance tables")
	}
}

func TestPaymentNotice(t *testing.T) {
	subject, body := PaymentNotice(day(2025, 6, 10))
	if !strings.Contains(subject, "114年6月款項申請") {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(subject, "114年7月5日") {
		t.Errorf("subject should carry next-month deadline: %q", subject)
	}
	if !strings.Contains(body, "114年6月份") {
		t.Error("body should carry the ROC month")
	}

	subject, _ = PaymentNotice(day(2025, 12, 10))
	if !strings.Contains(subject, "114年12月31日") {
		t.Errorf("December deadline wrong: %q", subject)
	}
}

func TestBuildContactBook(t *testing.T) {
	rows := []roster.Employee{
		{EmployeeID: "A1", Name: "王小明", Department: "研發部", Email: "a@x.com", Company: "集邦科技", InsuranceUnit: "集邦科技"},
		{EmployeeID: "B1", Name: "李小華", Department: "業務部", Email: "b@x.com", Company: "新報", InsuranceUnit: "新報"},
		{EmployeeID: "C1", Name: "離職者", Department: "行政部", Email: "c@x.com", Company: "集邦科技", EndDateRaw: "2024/1/1"},
	}
	blob, err := BuildContactBook(rows, "集邦", "拓墣", nil)
	if err != nil {
		t.Fatalf("BuildContactBook: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("empty workbook")
	}
	// xlsx files are zip archives.
	if blob[0] != 'P' || blob[1] != 'K' {
		t.Error("output does not look like an xlsx file")
	}
}

func TestBuildContactBookConfiguredTabs(t *testing.T) {
	rows := []roster.Employee{
		{EmployeeID: "A1", Name: "王小明", Department: "研發部", Email: "a@x.com", Company: "集邦科技", InsuranceUnit: "集邦科技"},
		{EmployeeID: "B1", Name: "李小華", Department: "業務部", Email: "b@x.com", Company: "新報", InsuranceUnit: "新報"},
	}
	blob, err := BuildContactBook(rows, "集邦", "拓墣", []string{"集邦、拓墣通訊錄", "新報"})
	if err != nil {
		t.Fatalf("BuildContactBook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got := f.GetSheetList()
	want := []string{"集邦、拓墣通訊錄", "新報"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tabs = %v, want %v", got, want)
	}

	name, err := f.GetCellValue("新報", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "李小華" {
		t.Errorf("新報 tab B2 = %q, want 李小華", name)
	}
}
