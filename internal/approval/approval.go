// Package approval implements the preview-then-commit gate for the birthday
// report. A request moves NoRequest -> PendingApproval when a token is
// minted, and PendingApproval -> Committed/Rejected/Expired exactly once.
// A consumed or expired token can never be replayed.
package approval

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTokenInvalid covers unknown, already-consumed, and expired tokens.
// They are deliberately indistinguishable to the caller.
var ErrTokenInvalid = errors.New("approval: invalid or expired token")

// Store is the ephemeral token cache. Values vanish after their TTL.
type Store interface {
	Put(key string, value []byte, ttl time.Duration)
	Get(key string) ([]byte, bool)
	Remove(key string)
}

// Machine mints and consumes single-use approval tokens.
type Machine struct {
	store    Store
	ttl      time.Duration
	newToken func() string
}

func NewMachine(store Store, ttl time.Duration) *Machine {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Machine{
		store:    store,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

// Begin enters PendingApproval: mints an opaque token and stores the pending
// payload under it for the TTL window.
func (m *Machine) Begin(payload []byte) string {
	token := m.newToken()
	m.store.Put(token, payload, m.ttl)
	return token
}

// Approve consumes the token exactly once and returns the pending payload.
// The payload describes what was previewed; the commit itself must re-run
// against fresh data, since eligibility may have changed since the preview.
func (m *Machine) Approve(token string) ([]byte, error) {
	payload, ok := m.store.Get(token)
	if !ok {
		return nil, ErrTokenInvalid
	}
	m.store.Remove(token)
	return payload, nil
}

// Reject discards a pending request. Rejecting an unknown or expired token
// reports the same failure as Approve would.
func (m *Machine) Reject(token string) error {
	if _, ok := m.store.Get(token); !ok {
		return ErrTokenInvalid
	}
	m.store.Remove(token)
	return nil
}
