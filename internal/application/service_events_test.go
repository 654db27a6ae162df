package application_test

import (
	"context"
	"testing"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func TestFlushOutboxRoutesByEventClass(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true, Raffles: true})
	raffle := f.activeRaffle(t, actor, campaign.CampaignID, "5.00", 10)

	entry, err := f.service.SubmitRaffleEntry(context.Background(), actor, application.AllocateTicketsInput{
		RaffleID:      raffle.RaffleID,
		TicketCount:   2,
		PurchaserName: "Hana",
		Amount:        money(t, "10.00"),
	})
	if err != nil {
		t.Fatalf("raffle entry: %v", err)
	}
	if _, err := f.service.ApproveTransaction(context.Background(), actor, entry.Transaction.TransactionID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := f.service.FlushOutbox(context.Background()); err != nil {
		t.Fatalf("flush outbox: %v", err)
	}

	domainTypes := map[string]bool{}
	for _, env := range f.domainEvents.Published() {
		domainTypes[env.EventType] = true
	}
	analyticsTypes := map[string]bool{}
	for _, env := range f.analytics.Published() {
		analyticsTypes[env.EventType] = true
	}

	if !domainTypes[domain.EventTransactionApproved] {
		t.Fatalf("approval missing from domain stream: %v", domainTypes)
	}
	if !analyticsTypes[domain.EventCampaignPublished] {
		t.Fatalf("campaign publish missing from analytics stream: %v", analyticsTypes)
	}
	if !analyticsTypes[domain.EventTicketsAllocated] {
		t.Fatalf("allocation missing from analytics stream: %v", analyticsTypes)
	}
	if domainTypes[domain.EventTicketsAllocated] {
		t.Fatal("allocation is analytics only and must not hit the domain stream")
	}

	// A second flush finds nothing pending.
	before := len(f.domainEvents.Published()) + len(f.analytics.Published())
	if err := f.service.FlushOutbox(context.Background()); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	after := len(f.domainEvents.Published()) + len(f.analytics.Published())
	if before != after {
		t.Fatalf("second flush republished events: %d -> %d", before, after)
	}
}
