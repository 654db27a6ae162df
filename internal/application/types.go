package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

type Config struct {
	ServiceName string

	// AllowDraftPresales permits manual ticket sales against raffles that
	// have not been activated yet.
	AllowDraftPresales bool

	// AllocationRetryBudget bounds optimistic retries before the allocation
	// surfaces a concurrency conflict instead of masking capacity exhaustion.
	AllocationRetryBudget int

	DefaultCurrency      string
	EventDedupTTL        time.Duration
	OutboxFlushBatchSize int
}

// Actor identifies the authenticated caller. Ownership of campaign ids is
// pre-validated by the surrounding platform; the service only distinguishes
// owners from admins for mutating operations.
type Actor struct {
	SubjectID string
	Role      string
	RequestID string
}

func (a Actor) isAdmin() bool { return a.Role == "admin" }

type CreateCampaignInput struct {
	Title        string
	Goal         decimal.Decimal
	DurationDays int
	Methods      domain.MethodFlags
}

type CreateRaffleInput struct {
	CampaignID   string
	Title        string
	Prize        string
	TicketPrice  decimal.Decimal
	TotalTickets int
	DrawDate     *time.Time
}

// AllocationSource distinguishes manual entries, which land pending until an
// organizer approves them, from verified online payments, which are approved
// on arrival.
type AllocationSource string

const (
	AllocationSourceManual AllocationSource = "manual"
	AllocationSourceOnline AllocationSource = "online"
)

type AllocateTicketsInput struct {
	RaffleID       string
	TicketCount    int
	PurchaserName  string
	PurchaserEmail string
	Amount         decimal.Decimal
	Source         AllocationSource
}

type AllocationResult struct {
	Transaction   domain.Transaction
	TicketNumbers []int
}

type CashDonationInput struct {
	CampaignID    string
	DonorName     string
	DonorEmail    string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

type WebhookInput struct {
	ProviderEventID string
	CampaignID      string
	PayerName       string
	PayerEmail      string
	Amount          decimal.Decimal
	Currency        string
}

type ListCampaignsOutput struct {
	Items      []domain.Campaign
	Pagination Pagination
}

type ListTransactionsOutput struct {
	Items      []domain.Transaction
	Pagination Pagination
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type Service struct {
	cfg          Config
	campaigns    ports.CampaignRepository
	raffles      ports.RaffleRepository
	transactions ports.TransactionRepository
	outbox       ports.OutboxRepository
	eventDedup   ports.EventDedupRepository
	snapshots    ports.SnapshotCache
	views        ports.ViewCounter
	domainEvents ports.DomainPublisher
	analytics    ports.AnalyticsPublisher
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Campaigns    ports.CampaignRepository
	Raffles      ports.RaffleRepository
	Transactions ports.TransactionRepository
	Outbox       ports.OutboxRepository
	EventDedup   ports.EventDedupRepository
	Snapshots    ports.SnapshotCache
	Views        ports.ViewCounter
	DomainEvents ports.DomainPublisher
	Analytics    ports.AnalyticsPublisher
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "fundraiser-core"
	}
	if cfg.AllocationRetryBudget <= 0 {
		cfg.AllocationRetryBudget = 5
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}
	if cfg.EventDedupTTL <= 0 {
		cfg.EventDedupTTL = 7 * 24 * time.Hour
	}
	if cfg.OutboxFlushBatchSize <= 0 {
		cfg.OutboxFlushBatchSize = 100
	}
	return &Service{
		cfg:          cfg,
		campaigns:    deps.Campaigns,
		raffles:      deps.Raffles,
		transactions: deps.Transactions,
		outbox:       deps.Outbox,
		eventDedup:   deps.EventDedup,
		snapshots:    deps.Snapshots,
		views:        deps.Views,
		domainEvents: deps.DomainEvents,
		analytics:    deps.Analytics,
		nowFn:        func() time.Time { return time.Now().UTC() },
	}
}
