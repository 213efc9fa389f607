package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"hr-ops/internal/roster"
)

// Movement is the previous month's roster churn.
type Movement struct {
	Year  int
	Month time.Month

	NewHires   []roster.Employee
	Departures []roster.Employee

	// BossHires excludes employees who both joined and left inside the
	// report month; the boss mail shows those only as departures. The
	// insurance mail keeps the full hire list, because enrolment and
	// cancellation both have to be filed.
	BossHires []roster.Employee
}

// ReportMonth resolves the month a run generated "today" reports on: the
// previous calendar month.
func ReportMonth(today time.Time) (int, time.Month) {
	prev := time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, today.Location())
	return prev.Year(), prev.Month()
}

// BuildMovement filters the roster down to hires and departures inside the
// report month.
func BuildMovement(rows []roster.Employee, year int, month time.Month) Movement {
	m := Movement{Year: year, Month: month}

	for _, e := range rows {
		if !e.HireDate.IsZero() && e.HireDate.Year() == year && e.HireDate.Month() == month {
			m.NewHires = append(m.NewHires, e)
		}
		if !e.EndDate.IsZero() && e.EndDate.Year() == year && e.EndDate.Month() == month {
			m.Departures = append(m.Departures, e)
		}
	}

	departed := map[string]bool{}
	for _, e := range m.Departures {
		departed[e.EmployeeID] = true
	}
	for _, e := range m.NewHires {
		if !departed[e.EmployeeID] {
			m.BossHires = append(m.BossHires, e)
		}
	}
	return m
}

// BossMail renders the movement summary sent upward, contact book attached.
func BossMail(m Movement, bossName string) (subject, htmlBody string) {
	subject = fmt.Sprintf("%d.%d月員工通訊錄", m.Year, int(m.Month))

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p><p>%d年%d月員工異動名單整理如下，該月通訊錄已夾帶於附件中，請查收，謝謝。</p>\n",
		html.EscapeString(bossName), m.Year, int(m.Month))

	if len(m.BossHires) > 0 {
		fmt.Fprintf(&b, "<p><b>%d月新進員工名單:</b></p>\n", int(m.Month))
		writeMovementTable(&b, m.BossHires, false)
	}
	if len(m.Departures) > 0 {
		fmt.Fprintf(&b, "<p><b>%d月離職員工名單:</b></p>\n", int(m.Month))
		writeMovementTable(&b, m.Departures, false)
	}
	if len(m.BossHires) == 0 && len(m.Departures) == 0 {
		b.WriteString("<p>p.s. 上個月無人員異動。</p>\n")
	}
	return subject, b.String()
}

// InsuranceMail renders the enrolment/cancellation notice for the group
// insurance contact. It uses the unfiltered hire list.
func InsuranceMail(m Movement, contactName string) (subject, htmlBody string) {
	subject = fmt.Sprintf("%d年度%d月之三家公司團保加退保名單", m.Year, int(m.Month))

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p><p>以下通知您%d年%d月新到職人員與離職人員名單，<br>如有問題請隨時回信告知，謝謝。</p>\n",
		html.EscapeString(contactName), m.Year, int(m.Month))

	if len(m.NewHires) > 0 {
		fmt.Fprintf(&b, "<p><b>%d/%d 新進人員名單如下:</b></p>\n", m.Year, int(m.Month))
		writeMovementTable(&b, m.NewHires, true)
	}
	if len(m.Departures) > 0 {
		fmt.Fprintf(&b, "<p><b>%d/%d 離職員工名單如下:</b></p>\n", m.Year, int(m.Month))
		writeMovementTable(&b, m.Departures, true)
	}
	return subject, b.String()
}

func writeMovementTable(b *strings.Builder, rows []roster.Employee, withDates bool) {
	b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse:collapse;">` + "\n")
	if withDates {
		b.WriteString("<tr><th>投保單位名稱</th><th>員工代號</th><th>員工姓名</th><th>到職日期</th><th>離職日期</th><th>出生日期</th></tr>\n")
	} else {
		b.WriteString("<tr><th>部門</th><th>員工姓名</th><th>員工代號</th><th>員工Email</th></tr>\n")
	}
	for _, e := range rows {
		if withDates {
			fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(e.InsuranceUnit), html.EscapeString(e.EmployeeID), html.EscapeString(e.Name),
				fmtDate(e.HireDate), fmtDate(e.EndDate), fmtDate(e.BirthDate))
		} else {
			fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(e.Department), html.EscapeString(e.Name),
				html.EscapeString(e.EmployeeID), html.EscapeString(e.Email))
		}
	}
	b.WriteString("</table>\n")
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006/01/02")
}
