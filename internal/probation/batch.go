package probation

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog/log"

	"hr-ops/internal/docgen"
	"hr-ops/internal/mailer"
)

// DocService is the slice of the document collaborator this batch needs.
type DocService interface {
	CreateFromTemplate(ctx context.Context, templateID, name, folderID string, values map[string]string) (docgen.Document, error)
	WaitReady(ctx context.Context, docID string) error
}

type Deps struct {
	Docs DocService
	Mail mailer.Sender

	TemplateID  string
	FolderID    string
	SenderName  string
	HRManagerCC string
}

// ItemResult is the outcome for one record. Err is nil on success.
type ItemResult struct {
	Record Record
	DocURL string
	Err    error
}

// BatchReport aggregates a run: what went out and what failed, with reasons,
// instead of a status cell mutated as a side effect.
type BatchReport struct {
	Succeeded []ItemResult
	Failed    []ItemResult
}

// Process walks pending records and produces one review packet each.
// Per-record failures are recorded and the loop continues; only the caller
// decides whether a non-empty Failed list is fatal.
func Process(ctx context.Context, records []Record, audience Audience, deps Deps, today time.Time) BatchReport {
	var rep BatchReport
	for _, r := range records {
		if r.Status != StatusPending {
			continue
		}
		res := processOne(ctx, r, audience, deps, today)
		if res.Err != nil {
			log.Warn().Str("employee", r.EmployeeID).Err(res.Err).Msg("probation packet failed")
			rep.Failed = append(rep.Failed, res)
			continue
		}
		rep.Succeeded = append(rep.Succeeded, res)
	}
	return rep
}

func processOne(ctx context.Context, r Record, audience Audience, deps Deps, today time.Time) ItemResult {
	res := ItemResult{Record: r}

	if !ValidEmail(r.ManagerEmail) {
		res.Err = fmt.Errorf("主管Email格式不正確: %q", r.ManagerEmail)
		return res
	}
	if !ValidEmail(r.EmployeeEmail) {
		res.Err = fmt.Errorf("員工Email格式不正確: %q", r.EmployeeEmail)
		return res
	}

	doc, err := deps.Docs.CreateFromTemplate(ctx, deps.TemplateID, FileName(today, r), deps.FolderID, map[string]string{
		"部門":   r.Department,
		"員工姓名": r.EmployeeName,
		"員工代號": r.EmployeeID,
		"試用截止日": fmtEnd(r),
	})
	if err != nil {
		res.Err = fmt.Errorf("建立考核表失敗: %w", err)
		return res
	}
	if err := deps.Docs.WaitReady(ctx, doc.ID); err != nil {
		res.Err = err
		return res
	}
	res.DocURL = doc.URL

	var msg mailer.Message
	if audience == NotifyManager {
		msg = managerMail(r, doc, deps, today)
	} else {
		msg = employeeMail(r, doc, deps, today)
	}
	if err := deps.Mail.Send(ctx, msg); err != nil {
		res.Err = fmt.Errorf("通知信寄送失敗: %w", err)
		return res
	}
	return res
}

func managerMail(r Record, doc docgen.Document, deps Deps, today time.Time) mailer.Message {
	subject := fmt.Sprintf("【試用期屆滿考核通知】%s同仁 %s (%s)", r.Department, r.EmployeeName, r.EmployeeID)
	body := fmt.Sprintf(`<div style="font-family: Arial, 'Microsoft JhengHei', sans-serif;">
<p>Dear %s,</p>
<p>此信件通知您，貴部門同仁 <b>%s</b> (員工代號: %s) 試用期將於 <b>%s</b> 屆滿。</p>
<p>請您開啟線上考核表，完成主管綜合評核並與員工安排面談。</p>
<p><a href="%s">點此開啟線上考核表</a></p>
<p>敬請於 <b>%s</b> 前完成所有考核流程，謝謝。</p>
<p>(提醒：若繳回日適逢假日，則順延至次一工作日。)</p>
</div>`,
		html.EscapeString(managerGreeting(r)), html.EscapeString(r.EmployeeName), html.EscapeString(r.EmployeeID),
		fmtEnd(r), doc.URL, DueDateLabel(r, today))

	return mailer.Message{
		To:         r.ManagerEmail,
		CC:         deps.HRManagerCC,
		Subject:    subject,
		HTMLBody:   body,
		SenderName: deps.SenderName,
	}
}

func employeeMail(r Record, doc docgen.Document, deps Deps, today time.Time) mailer.Message {
	subject := fmt.Sprintf("【試用期考核通知】%s 您好，請完成您的線上考核表", r.EmployeeName)
	body := fmt.Sprintf(`<div style="font-family: Arial, 'Microsoft JhengHei', sans-serif;">
<p>Dear %s 同仁,</p>
<p>此信件通知您，您的試用期將於 <b>%s</b> 屆滿。</p>
<p>請點擊下方連結完成您的自我評估，完成後請主動通知您的直屬主管 (%s) 並與他約定面談時間。</p>
<p><a href="%s">點此開啟線上考核表</a></p>
<p>敬請於 <b>%s</b> 前完成所有考核流程並繳交已簽核的考核表，謝謝。</p>
<p>(提醒：若繳回日適逢假日，則順延至次一工作日。)</p>
</div>`,
		html.EscapeString(r.EmployeeName), fmtEnd(r), html.EscapeString(managerGreeting(r)),
		doc.URL, DueDateLabel(r, today))

	cc := r.ManagerEmail
	if deps.HRManagerCC != "" {
		cc += "," + deps.HRManagerCC
	}
	return mailer.Message{
		To:         r.EmployeeEmail,
		CC:         cc,
		Subject:    subject,
		HTMLBody:   body,
		SenderName: deps.SenderName,
	}
}

func managerGreeting(r Record) string {
	if r.ManagerName != "" {
		return r.ManagerName
	}
	return "主管"
}

func fmtEnd(r Record) string {
	if r.ProbationEnd.IsZero() {
		return r.ProbationEndRaw
	}
	return r.ProbationEnd.Format("2006/1/2")
}
