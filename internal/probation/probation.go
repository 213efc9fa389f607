// Package probation drives the probation-review packets: for every pending
// roster row it duplicates the review template, waits for the copy to become
// accessible, and notifies the manager or the employee. One row failing
// never stops the batch.
package probation

import (
	"regexp"
	"time"

	"hr-ops/internal/dates"
)

// StatusPending marks rows awaiting a notification (通知信狀態).
const StatusPending = "待處理"

// Audience selects who the notification mail goes to.
type Audience string

const (
	NotifyManager  Audience = "manager"
	NotifyEmployee Audience = "employee"
)

// Record is one probation row from the review tracking sheet.
type Record struct {
	EmployeeID    string
	EmployeeName  string
	Department    string
	ManagerName   string
	ManagerEmail  string
	EmployeeEmail string
	Status        string

	ProbationEndRaw string
	ProbationEnd    time.Time
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail mirrors the loose address check the notifications rely on:
// something@somewhere.tld, no whitespace.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// FileName names the generated review sheet:
// YYYYMMDD_<employee id>_<name>_試用期考核表.
func FileName(today time.Time, r Record) string {
	id := r.EmployeeID
	if id == "" {
		id = "未知"
	}
	name := r.EmployeeName
	if name == "" {
		name = "未知"
	}
	return today.Format("20060102") + "_" + id + "_" + name + "_試用期考核表"
}

// DueDateLabel formats the review deadline for the notification mails.
// An absent probation end yields an operator-facing placeholder rather than
// a wrong date.
func DueDateLabel(r Record, today time.Time) string {
	due, err := dates.ComputeDueDate(r.ProbationEnd, today)
	if err != nil {
		return "請確認試用截止日"
	}
	return due.Format("2006/1/2")
}
