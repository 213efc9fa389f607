// Runs the offer flow for one accepted candidate: assigns the employee ID
// from the serial ledger, renders the qualification letter to PDF, mails it
// with the pre-filled personal-data form link, then appends the hire to the
// master roster.
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/config"
	"hr-ops/internal/docgen"
	"hr-ops/internal/mailer"
	"hr-ops/internal/recruitment"
	"hr-ops/internal/roster"
)

func main() {
	var (
		name            = flag.String("name", "", "candidate name")
		department      = flag.String("department", "", "department")
		title           = flag.String("title", "", "job title")
		company         = flag.String("company", "", "hiring company, e.g. 拓墣科技")
		employeeType    = flag.String("type", recruitment.TypeRegular, "employment type: 正職 or 非正職")
		salary          = flag.Int("salary", 0, "monthly salary in NT$")
		bonus           = flag.String("bonus", "", "bonus scheme, free text")
		onboarding      = flag.String("onboarding", "", "onboarding date, YYYY-MM-DD")
		email           = flag.String("email", "", "candidate email")
		cc              = flag.String("cc", "", "comma-separated CC addresses")
		supervisor      = flag.String("supervisor", "", "supervisor name")
		supervisorEmail = flag.String("supervisor-email", "", "supervisor email")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	onboardingDate, err := time.ParseInLocation("2006-01-02", *onboarding, time.Local)
	if err != nil {
		log.Fatal().Str("onboarding", *onboarding).Msg("onboarding date must be YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	src := roster.XLSXSource{Path: cfg.RosterPath}
	templates, err := recruitment.LoadTemplates(ctx, src, cfg.TemplateSheetName)
	if err != nil {
		log.Fatal().Err(err).Msg("template sheet load failed")
	}

	var ccList []string
	if *cc != "" {
		ccList = strings.Split(*cc, ",")
	}

	offer, err := recruitment.SendOffer(ctx, recruitment.Candidate{
		Name:            *name,
		Department:      *department,
		JobTitle:        *title,
		Company:         *company,
		EmployeeType:    *employeeType,
		Salary:          *salary,
		OtherSalaryInfo: *bonus,
		OnboardingDate:  onboardingDate,
		Email:           *email,
		CC:              ccList,
		SupervisorName:  *supervisor,
		SupervisorEmail: *supervisorEmail,
	}, recruitment.Deps{
		Serials:        recruitment.XLSXSerialStore{Path: cfg.RosterPath, Sheet: cfg.SerialSheetName},
		Docs:           docgen.New(cfg.DocBaseURL, cfg.DocToken),
		Mail:           mailer.New(cfg.MailBaseURL, cfg.MailToken),
		Roster:         roster.XLSXAppender{Path: cfg.RosterPath},
		LetterTemplate: templates[recruitment.LetterTemplateName],
		MailTemplate:   templates[recruitment.MailTemplateName],
		FormURL:        cfg.OfferFormURL,
		SenderName:     cfg.SenderName,
		RosterSheet:    cfg.EmployeeSheetName,
	}, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("offer flow failed")
	}

	log.Info().
		Str("employee_id", offer.EmployeeID).
		Str("candidate", *name).
		Msg("offer letter sent and roster updated")
}
