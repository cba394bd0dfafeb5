package routecache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/japandatascience/timeline-mapping/services/transit/panel"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cache keeps parsed routes keyed by the fingerprint of the search that produced them.
// Entries are held in memory and written through to the persister.
// Routes handed in and out of the cache are copies.
type Cache struct {
	logger    *zap.Logger
	persister Persister

	entries     map[string]*Entry
	entriesLock sync.RWMutex

	now func() time.Time
}

// NewCache creates a new route cache backed by the supplied persister.
func NewCache(logger *zap.Logger, persister Persister) *Cache {
	return &Cache{
		logger:    logger,
		persister: persister,
		entries:   map[string]*Entry{},
		now:       time.Now,
	}
}

// Load populates the in-memory entries from the persister.
func (c *Cache) Load(ctx context.Context) error {
	entries, err := c.persister.GetEntries(ctx)
	if err != nil {
		c.logger.Info("unable to load cache entries",
			zap.Error(err),
		)
		return err
	}

	c.entriesLock.Lock()
	for _, e := range entries {
		c.entries[e.Fingerprint.Key()] = e
	}
	c.entriesLock.Unlock()

	c.logger.Debug("loaded cache entries",
		zap.Int("count", len(entries)),
	)
	return nil
}

// Insert stores a copy of the route against the fingerprint, replacing any existing entry.
func (c *Cache) Insert(ctx context.Context, fp Fingerprint, route *panel.Route) (*Entry, error) {
	e := &Entry{
		ID:          uuid.New().String(),
		Fingerprint: fp,
		Route:       route.Copy(),
		CreatedAt:   c.now(),
	}

	if err := c.persister.PutEntry(ctx, e); err != nil {
		return nil, err
	}

	c.entriesLock.Lock()
	c.entries[fp.Key()] = e
	c.entriesLock.Unlock()

	return e.dup(), nil
}

// Lookup returns a copy of the route stored against the fingerprint.
// Entries written by another process are found through the persister.
func (c *Cache) Lookup(ctx context.Context, fp Fingerprint) (*panel.Route, bool) {
	key := fp.Key()

	c.entriesLock.RLock()
	e, ok := c.entries[key]
	c.entriesLock.RUnlock()
	if ok {
		return e.Route.Copy(), true
	}

	e, err := c.persister.GetEntry(ctx, key)
	if err == ErrEntryNotFound {
		return nil, false
	} else if err != nil {
		c.logger.Info("unable to look up cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}

	c.entriesLock.Lock()
	c.entries[key] = e
	c.entriesLock.Unlock()

	return e.Route.Copy(), true
}

// Len returns the number of entries held in memory.
func (c *Cache) Len() int {
	c.entriesLock.RLock()
	defer c.entriesLock.RUnlock()
	return len(c.entries)
}

// Prune removes every entry created before the supplied time and returns how many the
// persister deleted.
func (c *Cache) Prune(ctx context.Context, before time.Time) (int, error) {
	count, err := c.persister.DeleteEntriesBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	c.entriesLock.Lock()
	for key, e := range c.entries {
		if e.CreatedAt.Before(before) {
			delete(c.entries, key)
		}
	}
	c.entriesLock.Unlock()

	return count, nil
}

// SchedulePrune registers a job on the scheduler that removes entries older than maxAge.
// The scheduler is owned by the caller, who is responsible for starting and stopping it.
func (c *Cache) SchedulePrune(scheduler *cron.Cron, schedule string, maxAge time.Duration) (cron.EntryID, error) {
	return scheduler.AddFunc(schedule, func() {
		before := c.now().Add(-maxAge)

		count, err := c.Prune(context.Background(), before)
		if err != nil {
			c.logger.Warn("error pruning route cache",
				zap.Error(err),
			)
			return
		}

		c.logger.Info("pruned route cache",
			zap.Int("count", count),
			zap.Time("before", before),
		)
	})
}
