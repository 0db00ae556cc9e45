// Package gate implements the one-time disclaimer acknowledgment.
package gate

import "context"

// Store is the minimal persistence surface the gate needs; the sqlite
// repository satisfies it, tests use an in-memory fake.
type Store interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, v bool) error
}

// Gate is a two-state machine: Unacknowledged until the user explicitly
// accepts, Acknowledged forever after. The app never clears the flag.
type Gate struct {
	store        Store
	key          string
	acknowledged bool
}

func New(store Store, key string) *Gate {
	return &Gate{store: store, key: key}
}

// Load reads the persisted flag. A read failure leaves the gate
// unacknowledged for this session but is reported so the caller can warn.
func (g *Gate) Load(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	accepted, err := g.store.GetBool(ctx, g.key)
	if err != nil {
		return err
	}
	g.acknowledged = accepted
	return nil
}

func (g *Gate) Acknowledged() bool {
	return g.acknowledged
}

// Accept transitions to Acknowledged and persists the flag. The in-memory
// transition happens even when persistence fails, so the current session is
// not re-gated; the error is surfaced for a status warning.
func (g *Gate) Accept(ctx context.Context) error {
	g.acknowledged = true
	if g.store == nil {
		return nil
	}
	return g.store.SetBool(ctx, g.key, true)
}
