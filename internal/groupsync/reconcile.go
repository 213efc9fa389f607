package groupsync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Directory is the group-membership collaborator. Each call may fail
// independently; listing is paginated behind the implementation.
type Directory interface {
	ListMembers(ctx context.Context, group string) ([]string, error)
	InsertMember(ctx context.Context, group, email string) error
	RemoveMember(ctx context.Context, group, email string) error
}

// MemberError records one failed add or remove.
type MemberError struct {
	Email string
	Op    string // "add" or "remove"
	Err   error
}

// Report is the outcome of reconciling one group.
type Report struct {
	Group    string
	Added    []string
	Removed  []string
	Failed   []MemberError
	UpToDate bool
}

// Reconcile converges a group's actual member set to the required set.
// Adds and removes are applied one by one; a failing member is recorded and
// the rest of the batch continues (at-least-effort, not atomic). When the
// diff is empty no mutation call is made at all.
func Reconcile(ctx context.Context, dir Directory, group string, required map[string]bool) (Report, error) {
	rep := Report{Group: group}

	members, err := dir.ListMembers(ctx, group)
	if err != nil {
		return rep, fmt.Errorf("groupsync: list %s: %w", group, err)
	}
	current := NormalizeSet(members)

	toAdd, toRemove := Diff(required, current)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		rep.UpToDate = true
		log.Info().Str("group", group).Msg("membership already up to date")
		return rep, nil
	}

	for _, email := range toAdd {
		if err := dir.InsertMember(ctx, group, email); err != nil {
			log.Warn().Str("group", group).Str("email", email).Err(err).Msg("add member failed")
			rep.Failed = append(rep.Failed, MemberError{Email: email, Op: "add", Err: err})
			continue
		}
		log.Info().Str("group", group).Str("email", email).Msg("member added")
		rep.Added = append(rep.Added, email)
	}

	for _, email := range toRemove {
		if err := dir.RemoveMember(ctx, group, email); err != nil {
			log.Warn().Str("group", group).Str("email", email).Err(err).Msg("remove member failed")
			rep.Failed = append(rep.Failed, MemberError{Email: email, Op: "remove", Err: err})
			continue
		}
		log.Info().Str("group", group).Str("email", email).Msg("member removed")
		rep.Removed = append(rep.Removed, email)
	}

	return rep, nil
}
