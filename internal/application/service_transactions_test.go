package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func TestDonationWebhookDeduplication(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	input := application.WebhookInput{
		ProviderEventID: "evt-1",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Alice",
		PayerEmail:      "alice@example.com",
		Amount:          money(t, "100.00"),
	}
	tx, err := f.service.HandleDonationWebhook(context.Background(), input)
	if err != nil {
		t.Fatalf("first webhook: %v", err)
	}
	if tx.Status != domain.TransactionStatusApproved {
		t.Fatalf("webhook transaction status = %s, want approved", tx.Status)
	}

	if _, err := f.service.HandleDonationWebhook(context.Background(), input); !errors.Is(err, domain.ErrDuplicateEvent) {
		t.Fatalf("replayed webhook: got %v, want ErrDuplicateEvent", err)
	}

	snapshot, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, nil)
	if err != nil {
		t.Fatalf("compute snapshot: %v", err)
	}
	if !snapshot.TotalRaised.Equal(money(t, "100.00")) {
		t.Fatalf("total raised = %s, want 100.00 despite replay", snapshot.TotalRaised)
	}
}

func TestCashDonationApprovalFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	tx, err := f.service.SubmitCashDonation(context.Background(), actor, application.CashDonationInput{
		CampaignID: campaign.CampaignID,
		DonorName:  "Walk-in donor",
		Amount:     money(t, "25.00"),
	})
	if err != nil {
		t.Fatalf("submit cash donation: %v", err)
	}
	if tx.Status != domain.TransactionStatusPending {
		t.Fatalf("cash donation status = %s, want pending", tx.Status)
	}
	if tx.PaymentMethod != "cash" {
		t.Fatalf("payment method = %q, want cash default", tx.PaymentMethod)
	}

	snapshot, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, nil)
	if err != nil {
		t.Fatalf("compute snapshot: %v", err)
	}
	if !snapshot.TotalRaised.IsZero() {
		t.Fatalf("pending donation must not count, total = %s", snapshot.TotalRaised)
	}

	approved, err := f.service.ApproveTransaction(context.Background(), actor, tx.TransactionID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.ApprovedAt == nil {
		t.Fatal("approved transaction missing approved_at")
	}

	snapshot, err = f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, nil)
	if err != nil {
		t.Fatalf("recompute snapshot: %v", err)
	}
	if !snapshot.TotalRaised.Equal(money(t, "25.00")) {
		t.Fatalf("total raised = %s, want 25.00", snapshot.TotalRaised)
	}
	if !snapshot.DonationRevenue.Equal(money(t, "25.00")) {
		t.Fatalf("donation revenue = %s, want 25.00", snapshot.DonationRevenue)
	}

	if _, err := f.service.ApproveTransaction(context.Background(), actor, tx.TransactionID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("double approve: got %v, want ErrInvalidState", err)
	}
}

func TestRejectedRaffleEntryKeepsTicketsConsumed(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Raffles: true})
	raffle := f.activeRaffle(t, actor, campaign.CampaignID, "5.00", 10)

	entry, err := f.service.SubmitRaffleEntry(context.Background(), actor, application.AllocateTicketsInput{
		RaffleID:      raffle.RaffleID,
		TicketCount:   3,
		PurchaserName: "Fay",
		Amount:        money(t, "15.00"),
	})
	if err != nil {
		t.Fatalf("raffle entry: %v", err)
	}

	rejected, err := f.service.RejectTransaction(context.Background(), actor, entry.Transaction.TransactionID, "payment never arrived")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.TransactionStatusRejected || rejected.RejectReason == "" {
		t.Fatalf("unexpected rejected transaction: %+v", rejected)
	}

	// Voided numbers stay consumed: the counter holds and the next block
	// starts after the rejected one.
	stats, err := f.service.GetRaffleStats(context.Background(), raffle.RaffleID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TicketsSold != 3 {
		t.Fatalf("tickets sold = %d, want 3 after rejection", stats.TicketsSold)
	}

	next, err := f.service.SubmitRaffleEntry(context.Background(), actor, application.AllocateTicketsInput{
		RaffleID:      raffle.RaffleID,
		TicketCount:   2,
		PurchaserName: "Gus",
		Amount:        money(t, "10.00"),
	})
	if err != nil {
		t.Fatalf("next entry: %v", err)
	}
	if next.TicketNumbers[0] != 4 {
		t.Fatalf("next block starts at %d, want 4", next.TicketNumbers[0])
	}

	snapshot, err := f.service.ComputeSnapshot(context.Background(), campaign.CampaignID, nil)
	if err != nil {
		t.Fatalf("compute snapshot: %v", err)
	}
	if !snapshot.RaffleRevenue.IsZero() {
		t.Fatalf("rejected and pending entries must not count, raffle revenue = %s", snapshot.RaffleRevenue)
	}
}

func TestWebhookRequiresEnabledChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Raffles: true})

	_, err := f.service.HandleDonationWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-2",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Alice",
		Amount:          money(t, "10.00"),
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("donations disabled: got %v, want ErrInvalidState", err)
	}

	_, err = f.service.HandleOrderWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-3",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Bob",
		Amount:          money(t, "30.00"),
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("products disabled: got %v, want ErrInvalidState", err)
	}
}

func TestSubmitCashDonationValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true})

	if _, err := f.service.SubmitCashDonation(context.Background(), actor, application.CashDonationInput{
		CampaignID: campaign.CampaignID,
		DonorName:  "",
		Amount:     money(t, "5.00"),
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing donor name: got %v, want ErrValidation", err)
	}
	if _, err := f.service.SubmitCashDonation(context.Background(), actor, application.CashDonationInput{
		CampaignID: campaign.CampaignID,
		DonorName:  "Donor",
		Amount:     money(t, "0"),
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero amount: got %v, want ErrValidation", err)
	}
	if _, err := f.service.SubmitCashDonation(context.Background(), application.Actor{}, application.CashDonationInput{
		CampaignID: campaign.CampaignID,
		DonorName:  "Donor",
		Amount:     money(t, "5.00"),
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous actor: got %v, want ErrUnauthorized", err)
	}
}
