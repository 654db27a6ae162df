package memory

import (
	"context"
	"sync"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

type SnapshotCache struct {
	mu   sync.Mutex
	rows map[string]domain.Snapshot
}

func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{rows: map[string]domain.Snapshot{}}
}

func (c *SnapshotCache) Get(_ context.Context, campaignID string) (domain.Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, ok := c.rows[campaignID]
	return snapshot, ok, nil
}

func (c *SnapshotCache) Put(_ context.Context, snapshot domain.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[snapshot.CampaignID] = snapshot
	return nil
}

func (c *SnapshotCache) Invalidate(_ context.Context, campaignID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rows, campaignID)
	return nil
}

type ViewCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewViewCounter() *ViewCounter {
	return &ViewCounter{counts: map[string]int64{}}
}

func (c *ViewCounter) Increment(_ context.Context, campaignID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[campaignID]++
	return c.counts[campaignID], nil
}

func (c *ViewCounter) Get(_ context.Context, campaignID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[campaignID], nil
}
