package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pdv/terminal/internal/domain/catalog"
	"github.com/pdv/terminal/internal/domain/shared"
	"github.com/pdv/terminal/internal/domain/tenant"
	"github.com/pdv/terminal/internal/infrastructure/cache"
	"github.com/pdv/terminal/internal/infrastructure/session"
)

// Source is the outbound port the loader fetches snapshots from
type Source interface {
	GetProducts(ctx context.Context, query string) ([]catalog.Product, error)
	GetTables(ctx context.Context) ([]catalog.Table, error)
	GetCategories(ctx context.Context) ([]catalog.Category, error)
}

// Loader periodically re-fetches the product catalog, table occupancy and
// category list, replacing the held snapshot wholesale. It is passive:
// refresh failures keep the previous snapshot and are retried on the next
// tick.
//
// Refreshing is gated: while any blocking selection dialog is open, or a
// checkout is in flight, Suspend holds the gate and ticks are skipped, so a
// server refresh cannot replace the table list out from under an
// in-progress seat selection. The gate is a counter so nested dialogs
// stack.
type Loader struct {
	source   Source
	cache    cache.SnapshotCache
	sessions session.Store
	interval time.Duration
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot catalog.Snapshot

	suspended atomic.Int64
	refreshCh chan struct{}
}

// NewLoader creates a snapshot loader. The cache may be a no-op
// implementation when Redis is not configured.
func NewLoader(source Source, snapshotCache cache.SnapshotCache, sessions session.Store, interval time.Duration, logger *zap.Logger) *Loader {
	return &Loader{
		source:    source,
		cache:     snapshotCache,
		sessions:  sessions,
		interval:  interval,
		logger:    logger,
		refreshCh: make(chan struct{}, 1),
	}
}

// Start warms the snapshot from the cache, performs an initial refresh and
// then keeps refreshing on the configured interval until ctx is cancelled
func (l *Loader) Start(ctx context.Context) {
	l.warmStart(ctx)
	l.Refresh(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Refresh(ctx)
		case <-l.refreshCh:
			l.Refresh(ctx)
		}
	}
}

// RefreshNow schedules an immediate refresh, used when the operator's
// window regains focus or visibility. Non-blocking; coalesces with an
// already pending request.
func (l *Loader) RefreshNow() {
	select {
	case l.refreshCh <- struct{}{}:
	default:
	}
}

// Suspend holds the refresh gate. Every Suspend must be paired with a
// Resume.
func (l *Loader) Suspend() {
	l.suspended.Add(1)
}

// Resume releases the refresh gate. When the last hold is released a
// refresh is scheduled so the snapshot catches up on anything missed while
// suspended. A resume without a matching suspend is ignored, so a
// duplicated dialog-close cannot drive the gate negative and mask a later
// hold.
func (l *Loader) Resume() {
	for {
		held := l.suspended.Load()
		if held == 0 {
			return
		}
		if l.suspended.CompareAndSwap(held, held-1) {
			if held == 1 {
				l.RefreshNow()
			}
			return
		}
	}
}

// Suspended reports whether the refresh gate is currently held
func (l *Loader) Suspended() bool {
	return l.suspended.Load() > 0
}

// Refresh fetches all three lists and replaces the snapshot wholesale.
// Skipped while the gate is held. Any fetch failure keeps the previous
// snapshot intact.
func (l *Loader) Refresh(ctx context.Context) {
	if l.Suspended() {
		return
	}

	products, err := l.source.GetProducts(ctx, "")
	if err != nil {
		l.logger.Warn("catalog refresh failed, keeping previous snapshot", zap.Error(err))
		return
	}
	tables, err := l.source.GetTables(ctx)
	if err != nil {
		l.logger.Warn("table refresh failed, keeping previous snapshot", zap.Error(err))
		return
	}
	categories, err := l.source.GetCategories(ctx)
	if err != nil {
		l.logger.Warn("category refresh failed, keeping previous snapshot", zap.Error(err))
		return
	}

	snapshot := catalog.Snapshot{
		Products:   products,
		Tables:     tables,
		Categories: categories,
		FetchedAt:  time.Now(),
	}

	l.mu.Lock()
	l.snapshot = snapshot
	l.mu.Unlock()

	l.writeThrough(ctx, &snapshot)
}

// Snapshot returns the currently held snapshot
func (l *Loader) Snapshot() catalog.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// EventTypes subscribes the loader to tenant switches
func (l *Loader) EventTypes() []string {
	return []string{tenant.EventTypeTenantChanged}
}

// Handle drops the snapshot when the tenant changes: the old tenant's
// catalog must never bleed into the new one. A refresh for the new tenant
// is scheduled immediately.
func (l *Loader) Handle(ctx context.Context, event shared.DomainEvent) error {
	if event.EventType() != tenant.EventTypeTenantChanged {
		return nil
	}

	l.mu.Lock()
	l.snapshot = catalog.Snapshot{}
	l.mu.Unlock()

	if event.TenantID() != "" {
		l.RefreshNow()
	}
	return nil
}

// warmStart seeds the snapshot from the cache so the grid renders before
// the first live refresh completes
func (l *Loader) warmStart(ctx context.Context) {
	state, err := l.sessions.Load(ctx)
	if err != nil || state.TenantID == "" {
		return
	}

	cached, err := l.cache.Get(ctx, state.TenantID)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
		return
	}

	l.mu.Lock()
	l.snapshot = *cached
	l.mu.Unlock()
	l.logger.Info("snapshot warmed from cache",
		zap.String("tenant_id", state.TenantID),
		zap.Time("fetched_at", cached.FetchedAt),
	)
}

// writeThrough persists the fresh snapshot for the next warm start
func (l *Loader) writeThrough(ctx context.Context, snapshot *catalog.Snapshot) {
	state, err := l.sessions.Load(ctx)
	if err != nil || state.TenantID == "" {
		return
	}
	if err := l.cache.Set(ctx, state.TenantID, snapshot); err != nil {
		l.logger.Warn("snapshot cache write failed", zap.Error(err))
	}
}

// Ensure Loader can subscribe to the event bus
var _ shared.EventHandler = (*Loader)(nil)
