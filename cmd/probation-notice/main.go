// Sends probation review packets for every pending row in the tracking
// sheet: creates the evaluation form from the template, waits for it to be
// readable, and mails the link. -audience picks whether the manager or the
// employee round goes out.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/config"
	"hr-ops/internal/docgen"
	"hr-ops/internal/mailer"
	"hr-ops/internal/probation"
	"hr-ops/internal/roster"
)

func main() {
	audienceFlag := flag.String("audience", "manager", "who to notify: manager or employee")
	flag.Parse()

	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var audience probation.Audience
	switch *audienceFlag {
	case "manager":
		audience = probation.NotifyManager
	case "employee":
		audience = probation.NotifyEmployee
	default:
		log.Fatal().Str("audience", *audienceFlag).Msg("audience must be manager or employee")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.ProbationTemplateID == "" {
		log.Fatal().Msg("PROBATION_TEMPLATE_ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	src := roster.XLSXSource{Path: cfg.RosterPath}
	records, err := probation.LoadRecords(ctx, src, cfg.ProbationSheetName, probation.DefaultColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("tracking sheet load failed")
	}

	rep := probation.Process(ctx, records, audience, probation.Deps{
		Docs:        docgen.New(cfg.DocBaseURL, cfg.DocToken),
		Mail:        mailer.New(cfg.MailBaseURL, cfg.MailToken),
		TemplateID:  cfg.ProbationTemplateID,
		FolderID:    cfg.ProbationFolderID,
		SenderName:  cfg.SenderName,
		HRManagerCC: cfg.HRManagerCC,
	}, time.Now())

	for _, f := range rep.Failed {
		log.Warn().Str("employee", f.Record.EmployeeID).Err(f.Err).Msg("packet failed")
	}
	log.Info().
		Int("sent", len(rep.Succeeded)).
		Int("failed", len(rep.Failed)).
		Msg("probation notices finished")

	if len(rep.Failed) > 0 {
		os.Exit(1)
	}
}
