package application_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func TestExportTransactionsCSV(t *testing.T) {
	t.Parallel()

	f := newFixture(application.Config{})
	actor := organizer()
	campaign := f.publishedCampaign(t, actor, domain.MethodFlags{Donations: true, Raffles: true})
	raffle := f.activeRaffle(t, actor, campaign.CampaignID, "5.00", 10)

	if _, err := f.service.SubmitRaffleEntry(context.Background(), actor, application.AllocateTicketsInput{
		RaffleID:      raffle.RaffleID,
		TicketCount:   3,
		PurchaserName: "Iris",
		Amount:        money(t, "15.00"),
	}); err != nil {
		t.Fatalf("raffle entry: %v", err)
	}
	if _, err := f.service.HandleDonationWebhook(context.Background(), application.WebhookInput{
		ProviderEventID: "evt-x",
		CampaignID:      campaign.CampaignID,
		PayerName:       "Jon",
		Amount:          money(t, "7.50"),
	}); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	payload, err := f.service.ExportTransactions(context.Background(), actor, campaign.CampaignID, "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header plus two transactions", len(records))
	}
	if records[0][0] != "transaction_id" || records[0][8] != "ticket_numbers" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	foundTickets := false
	for _, row := range records[1:] {
		if row[1] == string(domain.TransactionKindRaffleEntry) {
			foundTickets = true
			if row[8] != "1 2 3" {
				t.Fatalf("ticket numbers column = %q, want \"1 2 3\"", row[8])
			}
			if row[3] != "15.00" {
				t.Fatalf("amount column = %q, want 15.00", row[3])
			}
		}
	}
	if !foundTickets {
		t.Fatal("raffle entry row missing from export")
	}

	if _, err := f.service.ExportTransactions(context.Background(), actor, campaign.CampaignID, "xlsx"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unsupported format: got %v, want ErrValidation", err)
	}
	if _, err := f.service.ExportTransactions(context.Background(), application.Actor{}, campaign.CampaignID, "csv"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous export: got %v, want ErrUnauthorized", err)
	}
}
