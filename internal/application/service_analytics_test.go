package application_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func TestGetSnapshotCachesUntilNextApproval(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	if _, err := f.service.HandleDonationWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-a",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Alice",
		Amount:          money(t, "40.00"),
	}); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	first, err := f.service.GetSnapshot(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if !first.TotalRaised.Equal(money(t, "40.00")) {
		t.Fatalf("total raised = %s, want 40.00", first.TotalRaised)
	}

	cached, err := f.service.GetSnapshot(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if !cached.ComputedAt.Equal(first.ComputedAt) {
		t.Fatal("expected the cached snapshot, not a recompute")
	}

	// A new approved transaction invalidates the cache synchronously.
	if _, err := f.service.HandleDonationWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-b",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Bob",
		Amount:          money(t, "60.00"),
	}); err != nil {
		t.Fatalf("second webhook: %v", err)
	}
	refreshed, err := f.service.GetSnapshot(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("refreshed get: %v", err)
	}
	if !refreshed.TotalRaised.Equal(money(t, "100.00")) {
		t.Fatalf("total raised = %s, want 100.00 after invalidation", refreshed.TotalRaised)
	}
	if refreshed.TotalDonors != 2 {
		t.Fatalf("total donors = %d, want 2", refreshed.TotalDonors)
	}
}

func TestComputeSnapshotIncludesCampaignViews(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	for i := 0; i < 3; i++ {
		if _, err := f.service.RecordCampaignView(context.Background(), campaign.CampaignID); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}
	snapshot, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, nil)
	if err != nil {
		t.Fatalf("compute snapshot: %v", err)
	}
	if snapshot.CampaignViews != 3 {
		t.Fatalf("campaign views = %d, want 3", snapshot.CampaignViews)
	}
}

func TestComputeSnapshotUnknownCampaign(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	if _, err := f.service.ComputeSnapshot(context.Background(), "missing", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown campaign: got %v, want ErrNotFound", err)
	}
}

func TestRecordCampaignViewUnknownCampaign(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	if _, err := f.service.RecordCampaignView(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown campaign: got %v, want ErrNotFound", err)
	}
}

func TestComputeSnapshotSameBoundaryIsBitIdentical(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	if _, err := f.service.HandleDonationWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-fixed",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Alice",
		Amount:          money(t, "40.00"),
	}); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	asOf := time.Now().UTC().Add(time.Hour)
	first, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, &asOf)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, &asOf)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("recomputes over an unchanged log differ:\n%s\n%s", firstJSON, secondJSON)
	}
	if !first.ComputedAt.Equal(asOf) {
		t.Fatalf("computed_at = %s, want the requested boundary %s", first.ComputedAt, asOf)
	}
}
