// The approval server owns the birthday report review loop. POST
// /runs/birthday builds the candidate list from the roster workbook and
// mails it for review; the approve link in that mail rebuilds the list from
// a fresh roster read and archives it over SFTP. Tokens are single use and
// expire after the configured TTL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hr-ops/internal/api"
	"hr-ops/internal/approval"
	"hr-ops/internal/birthday"
	"hr-ops/internal/config"
	"hr-ops/internal/mailer"
	"hr-ops/internal/report"
	"hr-ops/internal/roster"
	"hr-ops/internal/sftpclient"
)

type runPayload struct {
	RequestedAt time.Time `json:"requested_at"`
	Eligible    int       `json:"eligible"`
}

func main() {
	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if cfg.ReviewRecipient == "" {
		log.Fatal().Msg("BIRTHDAY_REVIEW_RECIPIENT is required")
	}

	mail := mailer.New(cfg.MailBaseURL, cfg.MailToken)
	tokens := approval.NewMachine(approval.NewMemStore(), time.Duration(cfg.ApprovalTTLSecs)*time.Second)
	drop := sftpclient.Drop{Cfg: sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}}

	preview := api.PreviewerFunc(func(ctx context.Context) (int, error) {
		artifacts, res, err := buildArtifacts(ctx, cfg)
		if err != nil {
			return 0, err
		}
		n := len(res.TrendForce) + len(res.Topology)

		payload, _ := json.Marshal(runPayload{RequestedAt: time.Now(), Eligible: n})
		token := tokens.Begin(payload)
		approveURL := fmt.Sprintf("%s/approval?action=approve&token=%s", cfg.ApprovalBaseURL, token)
		rejectURL := fmt.Sprintf("%s/approval?action=reject&token=%s", cfg.ApprovalBaseURL, token)

		subject, body := report.BirthdayApprovalMail(artifacts, approveURL, rejectURL)
		err = mail.Send(ctx, mailer.Message{
			To:         cfg.ReviewRecipient,
			Subject:    subject,
			HTMLBody:   body,
			SenderName: cfg.SenderName,
		})
		if err != nil {
			return 0, fmt.Errorf("review mail: %w", err)
		}
		for _, x := range res.Excluded {
			log.Debug().Str("employee", x.EmployeeID).Str("reason", string(x.Reason)).Msg("excluded")
		}
		return n, nil
	})

	commit := api.CommitterFunc(func(ctx context.Context, payload []byte) error {
		var run runPayload
		if err := json.Unmarshal(payload, &run); err != nil {
			log.Warn().Err(err).Msg("stale payload, archiving from fresh data anyway")
		}
		// The roster may have moved since the preview mail went out, so the
		// archived lists come from a fresh read, not the preview snapshot.
		artifacts, _, err := buildArtifacts(ctx, cfg)
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			if err := drop.Upload(ctx, a.Name+".html", []byte(a.HTML)); err != nil {
				return fmt.Errorf("archive %s: %w", a.Name, err)
			}
			log.Info().Str("file", a.Name).Msg("archived")
		}
		return nil
	})

	svc := api.NewService(api.ServiceDeps{
		Port:    cfg.ApprovalPort,
		Tokens:  tokens,
		Commit:  commit,
		Preview: preview,
	})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return svc.Start(gctx)
	})
	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("approval server stopped")
	}
	log.Info().Msg("approval server stopped")
}

func buildArtifacts(ctx context.Context, cfg config.Config) ([]report.Artifact, birthday.Result, error) {
	src := roster.XLSXSource{Path: cfg.RosterPath}
	rows, err := roster.LoadEmployees(ctx, src, cfg.EmployeeSheetName, cfg.RosterColumns)
	if err != nil {
		return nil, birthday.Result{}, err
	}
	today := time.Now()
	res := birthday.Filter(rows, today, birthday.Config{
		TrendForceName: cfg.TrendForceName,
		TopologyName:   cfg.TopologyName,
		ExcludedUnits:  cfg.ExcludedUnits,
	})
	return report.BuildBirthdayArtifacts(res, cfg.TrendForceName, cfg.TopologyName, today), res, nil
}
