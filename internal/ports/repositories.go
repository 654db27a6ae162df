package ports

import (
	"context"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/contracts"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

type CampaignRepository interface {
	Create(ctx context.Context, row domain.Campaign) error
	GetByID(ctx context.Context, campaignID string) (domain.Campaign, error)
	Update(ctx context.Context, row domain.Campaign) error
	List(ctx context.Context, status domain.CampaignStatus, limit, offset int) ([]domain.Campaign, int, error)
}

// TicketReservation is the result of the atomic reserve step of ticket
// allocation: the raffle as observed inside the critical section plus the
// block of numbers issued to the caller.
type TicketReservation struct {
	Raffle  domain.Raffle
	Tickets domain.TicketRange
}

type RaffleRepository interface {
	Create(ctx context.Context, row domain.Raffle) error
	GetByID(ctx context.Context, raffleID string) (domain.Raffle, error)
	Update(ctx context.Context, row domain.Raffle) error
	ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Raffle, error)

	// ReserveTickets performs the indivisible read-check-increment on
	// tickets_sold. The returned raffle reflects the post-increment state.
	// Implementations must guarantee that no two concurrent calls observe
	// the same pre-increment count: the persistent adapter locks the raffle
	// row, the in-memory adapter holds a per-raffle mutex. State checking
	// happens inside the same critical section so a concurrent close cannot
	// slip between the check and the increment.
	ReserveTickets(ctx context.Context, raffleID string, count int, allowDraftPresales bool) (TicketReservation, error)
}

type TransactionListQuery struct {
	CampaignID string
	Status     domain.TransactionStatus
	Limit      int
	Offset     int
}

type TransactionRepository interface {
	Append(ctx context.Context, row domain.Transaction) error
	GetByID(ctx context.Context, transactionID string) (domain.Transaction, error)
	// UpdateStatus transitions a pending transaction. Approved and rejected
	// rows are immutable; implementations return domain.ErrInvalidState when
	// the stored status is not pending.
	UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason string, at time.Time) (domain.Transaction, error)
	ListByCampaignID(ctx context.Context, query TransactionListQuery) ([]domain.Transaction, int, error)
}

type OutboxRecord struct {
	RecordID   string
	EventClass string
	Envelope   contracts.EventEnvelope
	CreatedAt  time.Time
	SentAt     *time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, record OutboxRecord) error
	ListPending(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkSent(ctx context.Context, recordID string, at time.Time) error
}

type EventDedupRepository interface {
	IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error
}
