// Mails the previous month's personnel movement: one summary to the boss
// with the refreshed contact book attached, one full hire/departure list to
// the insurance broker.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/config"
	"hr-ops/internal/mailer"
	"hr-ops/internal/report"
	"hr-ops/internal/roster"
)

func main() {
	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.BossEmail == "" || cfg.InsuranceEmail == "" {
		log.Fatal().Msg("BOSS_EMAIL and INSURANCE_EMAIL are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	src := roster.XLSXSource{Path: cfg.RosterPath}
	rows, err := roster.LoadEmployees(ctx, src, cfg.EmployeeSheetName, cfg.RosterColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("roster load failed")
	}

	year, month := report.ReportMonth(time.Now())
	movement := report.BuildMovement(rows, year, month)

	book, err := report.BuildContactBook(rows, cfg.TrendForceName, cfg.TopologyName, cfg.ContactBookTabs)
	if err != nil {
		log.Fatal().Err(err).Msg("contact book build failed")
	}

	mail := mailer.New(cfg.MailBaseURL, cfg.MailToken)

	subject, body := report.BossMail(movement, cfg.BossName)
	err = mail.Send(ctx, mailer.Message{
		To:         cfg.BossEmail,
		CC:         cfg.BossCC,
		Subject:    subject,
		HTMLBody:   body,
		SenderName: cfg.SenderName,
		Attachments: []mailer.Attachment{{
			Filename: cfg.ContactBookPath,
			Content:  book,
		}},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("boss mail failed")
	}
	log.Info().Int("hires", len(movement.BossHires)).Int("departures", len(movement.Departures)).Msg("boss mail sent")

	subject, body = report.InsuranceMail(movement, cfg.InsuranceName)
	err = mail.Send(ctx, mailer.Message{
		To:         cfg.InsuranceEmail,
		CC:         cfg.InsuranceCC,
		Subject:    subject,
		HTMLBody:   body,
		SenderName: cfg.SenderName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("insurance mail failed")
	}
	log.Info().Int("hires", len(movement.NewHires)).Msg("insurance mail sent")
}
