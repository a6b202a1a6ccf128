// Package wallet runs every group operation against the store. Mutations of
// one group are serialized through a per-group lock and saved as a whole
// aggregate, so concurrent votes never lose each other's updates.
package wallet

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/lifecycle"
	"github.com/mmynk/groupwallet/internal/lock"
	"github.com/mmynk/groupwallet/internal/metrics"
	"github.com/mmynk/groupwallet/internal/models"
	"github.com/mmynk/groupwallet/internal/storage"
	"github.com/mmynk/groupwallet/internal/voting"
)

// Manager orchestrates the wallet rules over a storage.Store.
type Manager struct {
	store     storage.Store
	locks     lock.Locker
	engine    *voting.Engine
	lifecycle *lifecycle.Controller
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLocker replaces the in-process group lock, e.g. with a Redis lock
// shared by several processes.
func WithLocker(l lock.Locker) Option {
	return func(m *Manager) { m.locks = l }
}

// WithMetrics records votes, transitions and lock waits.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// WithClock stamps every time with now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New creates a Manager. A nil engine uses the quorum policy.
func New(store storage.Store, engine *voting.Engine, opts ...Option) *Manager {
	if engine == nil {
		engine = voting.NewEngine(nil)
	}
	m := &Manager{
		store:  store,
		locks:  lock.NewKeyedMutex(),
		engine: engine,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.engine = m.engine.WithClock(m.now)
	m.lifecycle = lifecycle.New().WithClock(m.now)
	return m
}

// mutate loads the group under its lock, applies fn and saves the result.
// Nothing is saved when fn fails.
func (m *Manager) mutate(ctx context.Context, groupID string, fn func(g *models.Group) error) (*models.Group, error) {
	unlock, err := m.lock(ctx, groupID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	g, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := m.store.SaveGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (m *Manager) lock(ctx context.Context, groupID string) (func(), error) {
	start := time.Now()
	unlock, err := m.locks.Lock(ctx, groupID)
	if err != nil {
		slog.Warn("Failed to acquire group lock", "group_id", groupID, "error", err)
		return nil, apperr.Unavailable(err, "group %s is busy", groupID)
	}
	m.metrics.LockWaited(time.Since(start))
	return unlock, nil
}

// load reads a group for a member. Reads see a consistent snapshot from the
// store and do not take the group lock.
func (m *Manager) load(ctx context.Context, groupID, requesterID string) (*models.Group, error) {
	g, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(g, requesterID); err != nil {
		return nil, err
	}
	return g, nil
}

func requireMember(g *models.Group, memberID string) error {
	if !g.HasMember(memberID) {
		return apperr.Forbidden("not a member of this group")
	}
	return nil
}
