// Package memory provides map-backed implementations of the service's ports
// for local runtimes and unit tests. Semantics mirror the postgres adapter,
// including the per-raffle serialization of ticket reservation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

type Repositories struct {
	Campaigns    *CampaignRepository
	Raffles      *RaffleRepository
	Transactions *TransactionRepository
	Outbox       *OutboxRepository
	EventDedup   *EventDedupRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Campaigns:    &CampaignRepository{rows: map[string]domain.Campaign{}},
		Raffles:      &RaffleRepository{rows: map[string]domain.Raffle{}, locks: map[string]*sync.Mutex{}},
		Transactions: &TransactionRepository{},
		Outbox:       &OutboxRepository{rows: map[string]ports.OutboxRecord{}},
		EventDedup:   &EventDedupRepository{rows: map[string]eventDedupRow{}},
	}
}

type CampaignRepository struct {
	mu   sync.Mutex
	rows map[string]domain.Campaign
}

func (r *CampaignRepository) Create(_ context.Context, row domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[row.CampaignID]; ok {
		return domain.ErrConflict
	}
	r.rows[row.CampaignID] = row
	return nil
}

func (r *CampaignRepository) GetByID(_ context.Context, campaignID string) (domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[strings.TrimSpace(campaignID)]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return row, nil
}

func (r *CampaignRepository) Update(_ context.Context, row domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[row.CampaignID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[row.CampaignID] = row
	return nil
}

func (r *CampaignRepository) List(_ context.Context, status domain.CampaignStatus, limit, offset int) ([]domain.Campaign, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Campaign, 0, len(r.rows))
	for _, row := range r.rows {
		if status != "" && row.Status != status {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if limit > 0 {
		if offset >= len(matched) {
			return []domain.Campaign{}, total, nil
		}
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}
	return matched, total, nil
}

type RaffleRepository struct {
	mu    sync.Mutex
	rows  map[string]domain.Raffle
	locks map[string]*sync.Mutex
}

func (r *RaffleRepository) Create(_ context.Context, row domain.Raffle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[row.RaffleID]; ok {
		return domain.ErrConflict
	}
	r.rows[row.RaffleID] = row
	r.locks[row.RaffleID] = &sync.Mutex{}
	return nil
}

func (r *RaffleRepository) GetByID(_ context.Context, raffleID string) (domain.Raffle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[strings.TrimSpace(raffleID)]
	if !ok {
		return domain.Raffle{}, domain.ErrNotFound
	}
	return row, nil
}

func (r *RaffleRepository) Update(_ context.Context, row domain.Raffle) error {
	r.mu.Lock()
	lock, ok := r.locks[row.RaffleID]
	r.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}

	// Status changes join the same per-raffle critical section as
	// ReserveTickets, so a close cannot land inside an in-flight
	// reservation's check-then-increment.
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[row.RaffleID]
	if !ok {
		return domain.ErrNotFound
	}
	// tickets_sold is owned by ReserveTickets; plain updates never touch it.
	row.TicketsSold = stored.TicketsSold
	r.rows[row.RaffleID] = row
	return nil
}

func (r *RaffleRepository) ListByCampaignID(_ context.Context, campaignID string) ([]domain.Raffle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Raffle, 0)
	for _, row := range r.rows {
		if row.CampaignID == campaignID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ReserveTickets serializes per raffle: a dedicated mutex guards the
// read-check-increment while allocations against other raffles proceed
// concurrently.
func (r *RaffleRepository) ReserveTickets(_ context.Context, raffleID string, count int, allowDraftPresales bool) (ports.TicketReservation, error) {
	r.mu.Lock()
	lock, ok := r.locks[strings.TrimSpace(raffleID)]
	r.mu.Unlock()
	if !ok {
		return ports.TicketReservation{}, domain.ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	row, ok := r.rows[strings.TrimSpace(raffleID)]
	r.mu.Unlock()
	if !ok {
		return ports.TicketReservation{}, domain.ErrNotFound
	}
	if !row.AcceptsEntries(allowDraftPresales) {
		return ports.TicketReservation{}, domain.ErrInvalidState
	}
	if row.TicketsSold+count > row.TotalTickets {
		return ports.TicketReservation{}, domain.ErrCapacityExceeded
	}
	first := row.TicketsSold + domain.TicketNumberBase

	// Write back only the counter, mirroring the SQL increment expression.
	r.mu.Lock()
	current := r.rows[row.RaffleID]
	current.TicketsSold = row.TicketsSold + count
	current.UpdatedAt = time.Now().UTC()
	r.rows[row.RaffleID] = current
	r.mu.Unlock()

	return ports.TicketReservation{
		Raffle:  current,
		Tickets: domain.TicketRange{First: first, Last: first + count - 1},
	}, nil
}

type TransactionRepository struct {
	mu   sync.Mutex
	rows []domain.Transaction
}

func (r *TransactionRepository) Append(_ context.Context, row domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.TransactionID == row.TransactionID {
			return domain.ErrConflict
		}
	}
	r.rows = append(r.rows, row)
	return nil
}

func (r *TransactionRepository) GetByID(_ context.Context, transactionID string) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.TransactionID == transactionID {
			return row, nil
		}
	}
	return domain.Transaction{}, domain.ErrNotFound
}

func (r *TransactionRepository) UpdateStatus(_ context.Context, transactionID string, status domain.TransactionStatus, reason string, at time.Time) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.TransactionID != transactionID {
			continue
		}
		if row.Status != domain.TransactionStatusPending {
			return domain.Transaction{}, domain.ErrInvalidState
		}
		row.Status = status
		switch status {
		case domain.TransactionStatusApproved:
			approvedAt := at
			row.ApprovedAt = &approvedAt
		case domain.TransactionStatusRejected:
			rejectedAt := at
			row.RejectedAt = &rejectedAt
			row.RejectReason = reason
		default:
			return domain.Transaction{}, domain.ErrValidation
		}
		r.rows[i] = row
		return row, nil
	}
	return domain.Transaction{}, domain.ErrNotFound
}

func (r *TransactionRepository) ListByCampaignID(_ context.Context, query ports.TransactionListQuery) ([]domain.Transaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Transaction, 0)
	for _, row := range r.rows {
		if row.CampaignID != query.CampaignID {
			continue
		}
		if query.Status != "" && row.Status != query.Status {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].TransactionID < matched[j].TransactionID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	total := len(matched)
	if query.Limit > 0 {
		if query.Offset >= len(matched) {
			return []domain.Transaction{}, total, nil
		}
		end := query.Offset + query.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[query.Offset:end]
	}
	return matched, total, nil
}

type OutboxRepository struct {
	mu    sync.Mutex
	rows  map[string]ports.OutboxRecord
	order []string
}

func (r *OutboxRepository) Enqueue(_ context.Context, record ports.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[record.RecordID]; ok {
		return domain.ErrConflict
	}
	r.rows[record.RecordID] = record
	r.order = append(r.order, record.RecordID)
	return nil
}

func (r *OutboxRepository) ListPending(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range r.order {
		record, ok := r.rows[id]
		if !ok || record.SentAt != nil {
			continue
		}
		out = append(out, record)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(_ context.Context, recordID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.rows[recordID]
	if !ok {
		return domain.ErrNotFound
	}
	record.SentAt = &at
	r.rows[recordID] = record
	return nil
}

type eventDedupRow struct {
	EventID   string
	EventType string
	ExpiresAt time.Time
}

type EventDedupRepository struct {
	mu   sync.Mutex
	rows map[string]eventDedupRow
}

func (r *EventDedupRepository) IsDuplicate(_ context.Context, eventID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[eventID]
	if !ok {
		return false, nil
	}
	if now.After(row.ExpiresAt) {
		delete(r.rows, eventID)
		return false, nil
	}
	return true, nil
}

func (r *EventDedupRepository) MarkProcessed(_ context.Context, eventID, eventType string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[eventID] = eventDedupRow{EventID: eventID, EventType: eventType, ExpiresAt: expiresAt}
	return nil
}
