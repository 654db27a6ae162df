package application_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/events"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/adapters/memory"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

type fixture struct {
	service      *application.Service
	repos        *memory.Repositories
	snapshots    *memory.SnapshotCache
	views        *memory.ViewCounter
	domainEvents *events.MemoryDomainPublisher
	analytics    *events.MemoryAnalyticsPublisher
}

func newFixture(cfg application.Config) *fixture {
	repos := memory.NewRepositories()
	snapshots := memory.NewSnapshotCache()
	views := memory.NewViewCounter()
	domainEvents := events.NewMemoryDomainPublisher()
	analytics := events.NewMemoryAnalyticsPublisher()
	service := application.NewService(application.Dependencies{
		Config:       cfg,
		Campaigns:    repos.Campaigns,
		Raffles:      repos.Raffles,
		Transactions: repos.Transactions,
		Outbox:       repos.Outbox,
		EventDedup:   repos.EventDedup,
		Snapshots:    snapshots,
		Views:        views,
		DomainEvents: domainEvents,
		Analytics:    analytics,
	})
	return &fixture{
		service:      service,
		repos:        repos,
		snapshots:    snapshots,
		views:        views,
		domainEvents: domainEvents,
		analytics:    analytics,
	}
}

func money(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return d
}

func organizer() application.Actor {
	return application.Actor{SubjectID: "organizer-1", Role: "organizer"}
}

func (f *fixture) publishedCampaign(t *testing.T, actor application.Actor, methods domain.MethodFlags) domain.Campaign {
	t.Helper()
	campaign, err := f.service.CreateCampaign(context.Background(), actor, application.CreateCampaignInput{
		Title:        "School Garden",
		Goal:         decimal.RequireFromString("1000.00"),
		DurationDays: 30,
		Methods:      methods,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	campaign, err = f.service.PublishCampaign(context.Background(), actor, campaign.CampaignID)
	if err != nil {
		t.Fatalf("publish campaign: %v", err)
	}
	return campaign
}

func (f *fixture) activeRaffle(t *testing.T, actor application.Actor, campaignID, price string, totalTickets int) domain.Raffle {
	t.Helper()
	raffle, err := f.service.CreateRaffle(context.Background(), actor, application.CreateRaffleInput{
		CampaignID:   campaignID,
		Title:        "Spring Raffle",
		Prize:        "Gift basket",
		TicketPrice:  decimal.RequireFromString(price),
		TotalTickets: totalTickets,
	})
	if err != nil {
		t.Fatalf("create raffle: %v", err)
	}
	raffle, err = f.service.ActivateRaffle(context.Background(), actor, raffle.RaffleID)
	if err != nil {
		t.Fatalf("activate raffle: %v", err)
	}
	return raffle
}
