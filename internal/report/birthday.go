// Package report renders the outbound HR artifacts: birthday lists, the
// monthly movement report, the payment notice, and the contact book.
package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"hr-ops/internal/birthday"
	"hr-ops/internal/dates"
)

// Artifact is one rendered document ready for preview or archiving.
type Artifact struct {
	Entity string // short entity name, e.g. 集邦
	Name   string // file name, e.g. 集邦2507壽星
	HTML   string
}

var entityFullNames = map[string]string{
	"集邦": "集邦科技股份有限公司",
	"拓墣": "拓墣科技股份有限公司",
}

// BirthdayDocName builds the archive file name for an entity's list:
// <entity><yy><mm>壽星, dated to the report month (the month after today).
func BirthdayDocName(entity string, today time.Time) string {
	next := nextMonth(today)
	return fmt.Sprintf("%s%02d%02d壽星", entity, next.Year()%100, int(next.Month()))
}

// nextMonth is the first day of the month after today. Anchoring to day 1
// keeps a month-end run date from overflowing into the month after next.
func nextMonth(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
}

// BuildBirthdayArtifacts renders one HTML list per entity that has any
// eligible employee. Empty buckets produce no artifact.
func BuildBirthdayArtifacts(res birthday.Result, trendForceName, topologyName string, today time.Time) []Artifact {
	var out []Artifact
	if len(res.TrendForce) > 0 {
		out = append(out, Artifact{
			Entity: trendForceName,
			Name:   BirthdayDocName(trendForceName, today),
			HTML:   renderBirthdayList(res.TrendForce, trendForceName, today),
		})
	}
	if len(res.Topology) > 0 {
		out = append(out, Artifact{
			Entity: topologyName,
			Name:   BirthdayDocName(topologyName, today),
			HTML:   renderBirthdayList(res.Topology, topologyName, today),
		})
	}
	return out
}

func renderBirthdayList(entries []birthday.Entry, entity string, today time.Time) string {
	next := nextMonth(today)
	full := entityFullNames[entity]
	if full == "" {
		full = entity
	}

	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<p><b>%s</b>　列印日期： %s</p>\n", html.EscapeString(full), today.Format("2006/01/02"))
	fmt.Fprintf(&b, "<p><b>%d年%d月 每月壽星一覽表</b></p>\n", next.Year(), int(next.Month()))

	b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse:collapse;">` + "\n")
	b.WriteString("<tr><th>部門代號</th><th>部門名稱</th><th>員工代號</th><th>員工姓名</th><th>出生日期</th><th>年齡</th><th>年資(月)</th></tr>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td></tr>\n",
			html.EscapeString(e.DepartmentCode),
			html.EscapeString(e.DepartmentName),
			html.EscapeString(e.EmployeeID),
			html.EscapeString(e.EmployeeName),
			e.BirthDate.Format("01/02"),
			dates.Age(e.BirthDate, today),
			e.SeniorityMonths,
		)
	}
	b.WriteString("</table>\n")
	fmt.Fprintf(&b, "<p><b>合  計： %d 人</b></p>\n", len(entries))
	b.WriteString("</body></html>\n")
	return b.String()
}

// BirthdayApprovalMail builds the review mail: links to the previewed lists
// plus the approve/reject buttons carrying the single-use token.
func BirthdayApprovalMail(artifacts []Artifact, approveURL, rejectURL string) (subject, htmlBody string) {
	subject = "【審核】每月壽星生日禮金名單"

	var b strings.Builder
	b.WriteString("<html><body>\n<p>您好：</p>\n")
	b.WriteString("<p>附件為下個月的壽星生日禮金發放建議名單，請您審核。</p>\n<ul>\n")
	for _, a := range artifacts {
		fmt.Fprintf(&b, "<li><b>%s壽星名單:</b> %s</li>\n", html.EscapeString(a.Entity), html.EscapeString(a.Name))
	}
	b.WriteString("</ul>\n")
	b.WriteString("<p>確認無誤後，請點擊以下按鈕，系統將自動將檔案歸檔。</p>\n")
	fmt.Fprintf(&b, `<p><a href="%s">✓ 確認無誤，進行歸檔</a>　<a href="%s">✗ 名單有問題</a></p>`+"\n", approveURL, rejectURL)
	b.WriteString("<p><i>(此為系統自動發送郵件)</i></p>\n</body></html>\n")
	return subject, b.String()
}
