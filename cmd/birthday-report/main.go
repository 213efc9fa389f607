// One-shot dry run of the birthday eligibility pass. Renders the per-entity
// lists to HTML files locally and logs every exclusion with its reason, so
// the roster can be checked before a review round is started on the
// approval server.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/birthday"
	"hr-ops/internal/config"
	"hr-ops/internal/report"
	"hr-ops/internal/roster"
)

func main() {
	outDir := flag.String("out", ".", "directory for the rendered HTML files")
	flag.Parse()

	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src := roster.XLSXSource{Path: cfg.RosterPath}
	rows, err := roster.LoadEmployees(ctx, src, cfg.EmployeeSheetName, cfg.RosterColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("roster load failed")
	}

	today := time.Now()
	res := birthday.Filter(rows, today, birthday.Config{
		TrendForceName: cfg.TrendForceName,
		TopologyName:   cfg.TopologyName,
		ExcludedUnits:  cfg.ExcludedUnits,
	})

	for _, x := range res.Excluded {
		log.Info().
			Str("employee", x.EmployeeID).
			Str("name", x.Name).
			Str("reason", string(x.Reason)).
			Msg("excluded")
	}

	artifacts := report.BuildBirthdayArtifacts(res, cfg.TrendForceName, cfg.TopologyName, today)
	for _, a := range artifacts {
		path := filepath.Join(*outDir, a.Name+".html")
		if err := os.WriteFile(path, []byte(a.HTML), 0o644); err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("write failed")
		}
		log.Info().Str("file", path).Str("entity", a.Entity).Msg("rendered")
	}

	log.Info().
		Int("trendforce", len(res.TrendForce)).
		Int("topology", len(res.Topology)).
		Int("excluded", len(res.Excluded)).
		Msg("done")
}
