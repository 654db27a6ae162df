package unit

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/events"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/memory"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func newService() (*application.Service, *events.MemoryDomainPublisher) {
	repos := memory.NewRepositories()
	domainEvents := events.NewMemoryDomainPublisher()
	return application.NewService(application.Dependencies{
		Campaigns:    repos.Campaigns,
		Raffles:      repos.Raffles,
		Transactions: repos.Transactions,
		Outbox:       repos.Outbox,
		EventDedup:   repos.EventDedup,
		Snapshots:    memory.NewSnapshotCache(),
		Views:        memory.NewViewCounter(),
		DomainEvents: domainEvents,
		Analytics:    events.NewMemoryAnalyticsPublisher(),
	}), domainEvents
}

func TestFundraiserLifecycle(t *testing.T) {
	t.Parallel()

	svc, domainEvents := newService()
	ctx := context.Background()
	actor := application.Actor{SubjectID: "organizer-1", Role: "organizer"}

	campaign, err := svc.CreateCampaign(ctx, actor, application.CreateCampaignInput{
		Title:        "Community Garden",
		Goal:         decimal.RequireFromString("500.00"),
		DurationDays: 30,
		Methods:      domain.MethodFlags{Donations: true, Products: true, Raffles: true},
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if _, err := svc.PublishCampaign(ctx, actor, campaign.CampaignID); err != nil {
		t.Fatalf("publish campaign: %v", err)
	}

	raffle, err := svc.CreateRaffle(ctx, actor, application.CreateRaffleInput{
		CampaignID:   campaign.CampaignID,
		Title:        "Harvest Raffle",
		Prize:        "Produce box",
		TicketPrice:  decimal.RequireFromString("5.00"),
		TotalTickets: 10,
	})
	if err != nil {
		t.Fatalf("create raffle: %v", err)
	}
	if _, err := svc.ActivateRaffle(ctx, actor, raffle.RaffleID); err != nil {
		t.Fatalf("activate raffle: %v", err)
	}

	entry, err := svc.SubmitRaffleEntry(ctx, actor, application.AllocateTicketsInput{
		RaffleID:      raffle.RaffleID,
		TicketCount:   4,
		PurchaserName: "Dana",
		Amount:        decimal.RequireFromString("20.00"),
	})
	if err != nil {
		t.Fatalf("raffle entry: %v", err)
	}
	if _, err := svc.ApproveTransaction(ctx, actor, entry.Transaction.TransactionID); err != nil {
		t.Fatalf("approve entry: %v", err)
	}

	if _, err := svc.HandleDonationWebhook(ctx, application.WebhookInput{
		ProviderEventID: "evt-donation-1",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Alice",
		PayerEmail:      "alice@example.com",
		Amount:          decimal.RequireFromString("100.00"),
	}); err != nil {
		t.Fatalf("donation webhook: %v", err)
	}
	if _, err := svc.HandleOrderWebhook(ctx, application.WebhookInput{
		ProviderEventID: "evt-order-1",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Bob",
		Amount:          decimal.RequireFromString("40.00"),
	}); err != nil {
		t.Fatalf("order webhook: %v", err)
	}

	snapshot, err := svc.GetSnapshot(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if !snapshot.TotalRaised.Equal(decimal.RequireFromString("160.00")) {
		t.Fatalf("total raised = %s, want 160.00", snapshot.TotalRaised)
	}
	if !snapshot.RaffleRevenue.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("raffle revenue = %s, want 20.00", snapshot.RaffleRevenue)
	}
	if snapshot.TotalDonors != 3 {
		t.Fatalf("total donors = %d, want 3", snapshot.TotalDonors)
	}

	if _, err := svc.CloseRaffle(ctx, actor, raffle.RaffleID, 2); err != nil {
		t.Fatalf("close raffle: %v", err)
	}

	if err := svc.FlushOutbox(ctx); err != nil {
		t.Fatalf("flush outbox: %v", err)
	}
	closedSeen := false
	for _, env := range domainEvents.Published() {
		if env.EventType == domain.EventRaffleClosed {
			closedSeen = true
		}
	}
	if !closedSeen {
		t.Fatal("raffle close event never published")
	}
}
