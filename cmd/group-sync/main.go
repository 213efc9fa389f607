// Converges the mail-group membership of every mapped department to the set
// of active employees in the roster. Departments without a configured group
// address are skipped. Exits non-zero when any member operation failed so a
// scheduler can alert on it.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hr-ops/internal/config"
	"hr-ops/internal/directory"
	"hr-ops/internal/groupsync"
	"hr-ops/internal/roster"
)

func main() {
	_ = godotenv.Load(".env")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if len(cfg.DepartmentGroupMapping) == 0 {
		log.Fatal().Msg("DEPARTMENT_GROUP_MAPPING is empty, nothing to sync")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	src := roster.XLSXSource{Path: cfg.RosterPath}
	rows, err := roster.LoadEmployees(ctx, src, cfg.GroupSyncSheetName, cfg.RosterColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("roster load failed")
	}

	required := groupsync.RequiredMembers(rows, time.Now())
	dir := directory.New(cfg.DirectoryBaseURL, cfg.DirectoryToken)

	failures := 0
	for dept, group := range cfg.DepartmentGroupMapping {
		rep, err := groupsync.Reconcile(ctx, dir, group, required[dept])
		if err != nil {
			// Listing failed; this group was not touched at all.
			log.Error().Err(err).Str("department", dept).Str("group", group).Msg("reconcile aborted")
			failures++
			continue
		}
		if rep.UpToDate {
			log.Info().Str("group", group).Msg("already in sync")
			continue
		}
		log.Info().
			Str("group", group).
			Strs("added", rep.Added).
			Strs("removed", rep.Removed).
			Int("failed", len(rep.Failed)).
			Msg("reconciled")
		for _, f := range rep.Failed {
			log.Warn().Str("group", group).Str("email", f.Email).Str("op", f.Op).Err(f.Err).Msg("member operation failed")
			failures++
		}
	}

	if failures > 0 {
		log.Error().Int("failures", failures).Msg("group sync finished with errors")
		os.Exit(1)
	}
	log.Info().Msg("group sync finished")
}
