package ports

import (
	"context"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

// SnapshotCache holds the last computed analytics snapshot per campaign.
// The cache is a derived artifact: it may be dropped at any time and
// last-writer-wins is acceptable because recomputation is deterministic.
type SnapshotCache interface {
	Get(ctx context.Context, campaignID string) (domain.Snapshot, bool, error)
	Put(ctx context.Context, snapshot domain.Snapshot) error
	Invalidate(ctx context.Context, campaignID string) error
}

// ViewCounter tracks campaign page views for the engagement figures on the
// reporting dashboard.
type ViewCounter interface {
	Increment(ctx context.Context, campaignID string) (int64, error)
	Get(ctx context.Context, campaignID string) (int64, error)
}
