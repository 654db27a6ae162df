package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

// ComputeSnapshot rebuilds the analytics rollup for a campaign from the
// transaction log. It is a pure projection: repeated calls over an unchanged
// log with the same asOf boundary yield bit-identical snapshots.
func (s *Service) ComputeSnapshot(ctx context.Context, campaignID string, asOf *time.Time) (domain.Snapshot, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Snapshot{}, domain.ErrValidation
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return domain.Snapshot{}, err
	}

	transactions, _, err := s.transactions.ListByCampaignID(ctx, ports.TransactionListQuery{
		CampaignID: campaignID,
		Status:     domain.TransactionStatusApproved,
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	views, err := s.views.Get(ctx, campaignID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	boundary := s.nowFn()
	if asOf != nil {
		boundary = asOf.UTC()
	}
	return domain.BuildSnapshot(campaignID, transactions, views, boundary), nil
}

// GetSnapshot serves the cached snapshot when no transaction has been
// approved since the last compute, recomputing and re-caching otherwise.
// Cache writes are last-writer-wins; concurrent recomputes of the same log
// produce the same figures.
func (s *Service) GetSnapshot(ctx context.Context, campaignID string) (domain.Snapshot, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return domain.Snapshot{}, domain.ErrValidation
	}
	if cached, ok, err := s.snapshots.Get(ctx, campaignID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		slog.Default().WarnContext(ctx, "snapshot cache read failed",
			"module", "analytics",
			"operation", "get_snapshot",
			"campaign_id", campaignID,
			"error", err,
		)
	}
	snapshot, err := s.ComputeSnapshot(ctx, campaignID, nil)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.snapshots.Put(ctx, snapshot); err != nil {
		slog.Default().WarnContext(ctx, "snapshot cache write failed",
			"module", "analytics",
			"operation", "get_snapshot",
			"campaign_id", campaignID,
			"error", err,
		)
	}
	return snapshot, nil
}

// invalidateSnapshot drops the cached rollup after the transaction log
// changed. A cache failure here only costs an extra recompute later, so it
// is logged and swallowed.
func (s *Service) invalidateSnapshot(ctx context.Context, campaignID string) {
	if err := s.snapshots.Invalidate(ctx, campaignID); err != nil {
		slog.Default().WarnContext(ctx, "snapshot invalidation failed",
			"module", "analytics",
			"operation", "invalidate_snapshot",
			"campaign_id", campaignID,
			"error", err,
		)
	}
}
