package recruitment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-ops/internal/docgen"
	"hr-ops/internal/mailer"
	"hr-ops/internal/roster"
)

// OfferSent is the roster status written after the offer mail went out.
const OfferSent = "已寄送Offer"

// Template names inside the letter-template sheet.
const (
	LetterTemplateName = "PDF Offer 範本"
	MailTemplateName   = "錄取通知Email內文"
)

// Candidate is one submission from the recruitment form.
type Candidate struct {
	Name            string
	Department      string
	JobTitle        string
	Company         string
	EmployeeType    string // 正職 or 非正職
	Salary          int    // NT$ per month
	OtherSalaryInfo string // bonus scheme, free text
	OnboardingDate  time.Time
	Email           string // candidate's private address
	CC              []string
	SupervisorName  string
	SupervisorEmail string
}

func (c Candidate) validate() error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "員工姓名")
	}
	if c.Company == "" {
		missing = append(missing, "公司別")
	}
	if c.SupervisorName == "" {
		missing = append(missing, "直屬主管")
	}
	if c.Email == "" {
		missing = append(missing, "Email")
	}
	if c.OnboardingDate.IsZero() {
		missing = append(missing, "報到日期")
	}
	if len(missing) > 0 {
		return fmt.Errorf("recruitment: 必填欄位不完整: %s", strings.Join(missing, "、"))
	}
	return nil
}

// LoadTemplates reads the letter-template sheet: template name in column A,
// HTML body in column B.
func LoadTemplates(ctx context.Context, src roster.Source, sheet string) (map[string]string, error) {
	headers, rows, err := src.Read(ctx, sheet)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows)+1)
	// The sheet has no header row on the service side; Read treats the
	// first row as headers, so fold it back in.
	if len(headers) >= 2 && headers[0] != "" {
		out[strings.TrimSpace(headers[0])] = headers[1]
	}
	for _, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		out[strings.TrimSpace(row[0])] = row[1]
	}
	return out, nil
}

// rocDate renders a date on the ROC calendar, e.g. 民國114年8月24日.
func rocDate(t time.Time) string {
	return fmt.Sprintf("民國%d年%d月%d日", t.Year()-1911, int(t.Month()), t.Day())
}

// rocDateSpaced is the letter-footer form with full-width spacing.
func rocDateSpaced(t time.Time) string {
	return fmt.Sprintf("中　華　民　國　%d　年　%d　月　%d　日", t.Year()-1911, int(t.Month()), t.Day())
}

func formatNT(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// RenderOfferLetter fills the letter template for one candidate. The bonus
// block renders only when the candidate has one; the footer carries today's
// ROC date.
func RenderOfferLetter(template string, c Candidate, today time.Time) string {
	bonus := ""
	if strings.TrimSpace(c.OtherSalaryInfo) != "" {
		bonus = "<b>獎 金 制 度 ： </b>" + c.OtherSalaryInfo
	}
	body := docgen.Render(template, map[string]string{
		"員工姓名": c.Name,
		"部門":   c.Department,
		"職稱":   c.JobTitle,
		"薪資制度": fmt.Sprintf("NT$%s/月，到職當月薪資依實際到職天數比例計算。", formatNT(c.Salary)),
		"報到日期": rocDate(c.OnboardingDate) + " 上午 09 時 30 分",
		"獎金制度": bonus,
		"文件日期": rocDateSpaced(today),
	})
	return fmt.Sprintf(`<html><head><style>body { font-family: 'Arial Unicode MS', sans-serif; font-size: 12pt; } .content { margin: 0 80px; } p { line-height: 1.8; text-align: justify; }</style></head><body><div class="content"><h1 style="text-align: center;">符 合 資 格 通 知 書</h1>%s</div></body></html>`, body)
}

// OfferFileName names the attached letter, e.g. 符合資格通知書(拓墣科技)-陳小美.pdf.
func OfferFileName(company, name string) string {
	return fmt.Sprintf("符合資格通知書(%s)-%s.pdf", company, name)
}

// OfferMailSubject brands the mail by hiring entity.
func OfferMailSubject(company string) string {
	if company == "集邦科技" {
		return "集邦科技_符合資格通知書"
	}
	return fmt.Sprintf("集邦/%s_符合資格通知書", company)
}

// PrefilledFormURL builds the personal-data form link carried in the offer
// mail, pre-filled with the candidate's name and the verification code the
// roster row will be matched against.
func PrefilledFormURL(formURL, name, code string) string {
	v := url.Values{}
	v.Set("name", name)
	v.Set("code", code)
	sep := "?"
	if strings.Contains(formURL, "?") {
		sep = "&"
	}
	return formURL + sep + v.Encode()
}

// PDFRenderer is the slice of the document service the offer flow needs.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, name, html string) ([]byte, error)
}

// RowAppender appends one record to a roster sheet, keyed by header name.
type RowAppender interface {
	AppendRow(ctx context.Context, sheet string, cells map[string]string) error
}

type Deps struct {
	Serials SerialStore
	Docs    PDFRenderer
	Mail    mailer.Sender
	Roster  RowAppender

	LetterTemplate string
	MailTemplate   string
	FormURL        string
	SenderName     string
	RosterSheet    string

	// newCode defaults to uuid; injectable for tests.
	NewCode func() string
}

// Offer is the outcome of a processed submission.
type Offer struct {
	EmployeeID       string
	VerificationCode string
}

// SendOffer runs the whole offer flow for one candidate: assign the employee
// ID, render and convert the letter, mail it with the pre-filled form link,
// and only then append the hire to the roster. The ordering is deliberate: a
// failed mail must not leave a phantom row behind.
func SendOffer(ctx context.Context, c Candidate, deps Deps, today time.Time) (Offer, error) {
	if err := c.validate(); err != nil {
		return Offer{}, err
	}
	if deps.LetterTemplate == "" || deps.MailTemplate == "" {
		return Offer{}, fmt.Errorf("recruitment: 找不到 %q 或 %q 範本", LetterTemplateName, MailTemplateName)
	}

	employeeID, err := NewEmployeeID(ctx, deps.Serials, c.Company, c.EmployeeType, c.OnboardingDate)
	if err != nil {
		return Offer{}, err
	}

	code := newCode(deps)
	letter := RenderOfferLetter(deps.LetterTemplate, c, today)
	pdf, err := deps.Docs.RenderPDF(ctx, OfferFileName(c.Company, c.Name), letter)
	if err != nil {
		return Offer{}, fmt.Errorf("recruitment: 通知書產生失敗: %w", err)
	}

	body := docgen.Render(deps.MailTemplate, map[string]string{
		"個人資料表單連結": PrefilledFormURL(deps.FormURL, c.Name, code),
	})
	err = deps.Mail.Send(ctx, mailer.Message{
		To:         c.Email,
		CC:         strings.Join(c.CC, ","),
		Subject:    OfferMailSubject(c.Company),
		HTMLBody:   body,
		SenderName: deps.SenderName,
		Attachments: []mailer.Attachment{{
			Filename: OfferFileName(c.Company, c.Name),
			Content:  pdf,
		}},
	})
	if err != nil {
		return Offer{}, fmt.Errorf("recruitment: 錄取通知信寄送失敗: %w", err)
	}

	err = deps.Roster.AppendRow(ctx, deps.RosterSheet, map[string]string{
		"員工代號":   employeeID,
		"員工姓名":   c.Name,
		"部門":     c.Department,
		"直屬主管":   c.SupervisorName,
		"主管Email": c.SupervisorEmail,
		"到職日期":   c.OnboardingDate.Format("2006/1/2"),
		"投保單位名稱": c.Company,
		"Offer狀態": OfferSent,
		"驗證碼":    code,
	})
	if err != nil {
		// The letter is already in the candidate's inbox; surface the row
		// failure loudly so the roster gets fixed by hand.
		return Offer{EmployeeID: employeeID, VerificationCode: code},
			fmt.Errorf("recruitment: 通知信已寄出但寫入名冊失敗: %w", err)
	}
	return Offer{EmployeeID: employeeID, VerificationCode: code}, nil
}

func newCode(deps Deps) string {
	if deps.NewCode != nil {
		return deps.NewCode()
	}
	return uuid.NewString()
}
