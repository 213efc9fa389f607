package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is loaded once at process start. Precedence is explicit:
// environment value wins over the built-in default. JSON-encoded values
// (mappings, lists) are parsed here exactly once so the rule packages only
// ever see typed data.
type Config struct {
	// Master roster workbook
	RosterPath         string
	EmployeeSheetName  string
	GroupSyncSheetName string
	ProbationSheetName string
	TemplateSheetName  string
	SerialSheetName    string

	// Logical field -> roster header name
	RosterColumns map[string]string

	// Birthday report
	ExcludedUnits    []string
	TrendForceName   string // entity "A" match substring
	TopologyName     string // entity "B" match substring
	PaymentRecipient string
	ReviewRecipient  string

	// Group sync: department -> group address
	DepartmentGroupMapping map[string]string

	// Mail API
	MailBaseURL   string
	MailToken     string
	SenderName    string
	HRManagerCC   string
	PaymentSender string

	// Employee movement report
	BossName        string
	BossEmail       string
	BossCC          string
	InsuranceName   string
	InsuranceEmail  string
	InsuranceCC     string
	ContactBookTabs []string
	ContactBookPath string

	// Directory API
	DirectoryBaseURL string
	DirectoryToken   string

	// Document service
	DocBaseURL          string
	DocToken            string
	ProbationTemplateID string
	ProbationFolderID   string

	// Approval flow
	ApprovalBaseURL string
	ApprovalTTLSecs int
	ApprovalPort    int

	// Offer flow
	OfferFormURL string

	// Archive drop
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

// Default roster headers for the 員工總控制表 sheet. Overridable as a JSON
// object via ROSTER_COLUMN_NAMES when the sheet layout drifts.
var defaultRosterColumns = map[string]string{
	"employeeId":     "員工代號",
	"employeeName":   "員工姓名",
	"department":     "部門",
	"departmentCode": "部門代號",
	"departmentName": "部門名稱",
	"company":        "投保單位名稱",
	"insuranceUnit":  "投保單位名稱",
	"dob":            "出生日期",
	"hireDate":       "到職日期",
	"endDate":        "離職日期",
	"email":          "員工Email",
}

func Load() (Config, error) {
	cfg := Config{
		RosterPath:         getenv("ROSTER_PATH", "roster.xlsx"),
		EmployeeSheetName:  getenv("EMPLOYEE_SHEET_NAME", "員工總控制表"),
		GroupSyncSheetName: getenv("GROUP_SYNC_SHEET_NAME", "員工總控制表"),
		ProbationSheetName: getenv("PROBATION_SHEET_NAME", "試用期考核"),
		TemplateSheetName:  getenv("TEMPLATE_SHEET_NAME", "信件範本"),
		SerialSheetName:    getenv("SERIAL_SHEET_NAME", "編碼紀錄"),

		TrendForceName:   getenv("TRENDFORCE_NAME", "集邦"),
		TopologyName:     getenv("TOPOLOGY_NAME", "拓墣"),
		PaymentRecipient: os.Getenv("PAYMENT_NOTICE_RECIPIENT"),
		ReviewRecipient:  os.Getenv("BIRTHDAY_REVIEW_RECIPIENT"),

		MailBaseURL:   getenv("MAIL_API_BASE_URL", "https://mail.internal/api"),
		MailToken:     os.Getenv("MAIL_API_TOKEN"),
		SenderName:    getenv("SENDER_NAME", "人資中心"),
		HRManagerCC:   os.Getenv("HR_MANAGER_CC_EMAIL"),
		PaymentSender: getenv("PAYMENT_SENDER_NAME", "管理中心會計處"),

		BossName:        os.Getenv("BOSS_NAME"),
		BossEmail:       os.Getenv("BOSS_EMAIL"),
		BossCC:          os.Getenv("BOSS_CC_EMAIL"),
		InsuranceName:   os.Getenv("INSURANCE_NAME"),
		InsuranceEmail:  os.Getenv("INSURANCE_EMAIL"),
		InsuranceCC:     os.Getenv("INSURANCE_CC_EMAILS"),
		ContactBookPath: getenv("CONTACT_BOOK_PATH", "contacts.xlsx"),

		DirectoryBaseURL: getenv("DIRECTORY_BASE_URL", "https://directory.internal/api"),
		DirectoryToken:   os.Getenv("DIRECTORY_TOKEN"),

		DocBaseURL:          getenv("DOC_API_BASE_URL", "https://docs.internal/api"),
		DocToken:            os.Getenv("DOC_API_TOKEN"),
		ProbationTemplateID: os.Getenv("PROBATION_TEMPLATE_ID"),
		ProbationFolderID:   os.Getenv("PROBATION_FOLDER_ID"),

		ApprovalBaseURL: getenv("APPROVAL_BASE_URL", "http://localhost:8080"),
		ApprovalTTLSecs: getenvInt("APPROVAL_TTL_SECONDS", 3600),
		ApprovalPort:    getenvInt("APPROVAL_PORT", 8080),

		OfferFormURL: os.Getenv("NEW_HIRE_FORM_URL"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/hr-archive"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}

	var err error
	cfg.RosterColumns, err = getenvStringMap("ROSTER_COLUMN_NAMES", defaultRosterColumns)
	if err != nil {
		return Config{}, err
	}
	cfg.DepartmentGroupMapping, err = getenvStringMap("DEPARTMENT_GROUP_MAPPING", map[string]string{})
	if err != nil {
		return Config{}, err
	}
	cfg.ExcludedUnits, err = getenvStringList("EXCLUDED_INSURANCE_UNITS", []string{"新報", "荃富"})
	if err != nil {
		return Config{}, err
	}
	cfg.ContactBookTabs, err = getenvStringList("CONTACT_BOOK_TABS", []string{"集邦、拓墣通訊錄", "新報"})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvStringMap(k string, def map[string]string) (map[string]string, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil, fmt.Errorf("config: %s is not a JSON object: %w", k, err)
	}
	return out, nil
}

func getenvStringList(k string, def []string) ([]string, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		return nil, fmt.Errorf("config: %s is not a JSON array: %w", k, err)
	}
	return out, nil
}
