package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/contracts"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

type Repositories struct {
	Campaigns    ports.CampaignRepository
	Raffles      ports.RaffleRepository
	Transactions ports.TransactionRepository
	Outbox       ports.OutboxRepository
	EventDedup   ports.EventDedupRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Campaigns:    &campaignRepository{db: db},
		Raffles:      &raffleRepository{db: db},
		Transactions: &transactionRepository{db: db},
		Outbox:       &outboxRepository{db: db},
		EventDedup:   &eventDedupRepository{db: db},
	}
}

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, row domain.Campaign) error {
	rec := toCampaignModel(row)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID string) (domain.Campaign, error) {
	var rec campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.ErrNotFound
		}
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec), nil
}

func (r *campaignRepository) Update(ctx context.Context, row domain.Campaign) error {
	rec := toCampaignModel(row)
	res := r.db.WithContext(ctx).Model(&campaignModel{}).Where("campaign_id = ?", row.CampaignID).Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *campaignRepository) List(ctx context.Context, status domain.CampaignStatus, limit, offset int) ([]domain.Campaign, int, error) {
	q := r.db.WithContext(ctx).Model(&campaignModel{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []campaignModel
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Campaign, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainCampaign(rec))
	}
	return out, int(total), nil
}

type raffleRepository struct {
	db *gorm.DB
}

func (r *raffleRepository) Create(ctx context.Context, row domain.Raffle) error {
	rec := toRaffleModel(row)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *raffleRepository) GetByID(ctx context.Context, raffleID string) (domain.Raffle, error) {
	var rec raffleModel
	if err := r.db.WithContext(ctx).Where("raffle_id = ?", raffleID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Raffle{}, domain.ErrNotFound
		}
		return domain.Raffle{}, err
	}
	return toDomainRaffle(rec), nil
}

func (r *raffleRepository) Update(ctx context.Context, row domain.Raffle) error {
	res := r.db.WithContext(ctx).Model(&raffleModel{}).Where("raffle_id = ?", row.RaffleID).Updates(map[string]any{
		"title":          row.Title,
		"prize":          row.Prize,
		"draw_date":      row.DrawDate,
		"status":         string(row.Status),
		"winning_ticket": row.WinningTicket,
		"updated_at":     row.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *raffleRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Raffle, error) {
	var recs []raffleModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Raffle, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainRaffle(rec))
	}
	return out, nil
}

// ReserveTickets locks the raffle row for the duration of the
// read-check-increment so concurrent purchasers serialize per raffle and no
// two callers can observe the same pre-increment tickets_sold.
func (r *raffleRepository) ReserveTickets(ctx context.Context, raffleID string, count int, allowDraftPresales bool) (ports.TicketReservation, error) {
	var out ports.TicketReservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec raffleModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("raffle_id = ?", raffleID).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		raffle := toDomainRaffle(rec)
		if !raffle.AcceptsEntries(allowDraftPresales) {
			return domain.ErrInvalidState
		}
		if raffle.TicketsSold+count > raffle.TotalTickets {
			return domain.ErrCapacityExceeded
		}
		now := time.Now().UTC()
		if err := tx.Model(&raffleModel{}).Where("raffle_id = ?", raffleID).Updates(map[string]any{
			"tickets_sold": gorm.Expr("tickets_sold + ?", count),
			"updated_at":   now,
		}).Error; err != nil {
			return err
		}
		first := raffle.TicketsSold + domain.TicketNumberBase
		raffle.TicketsSold += count
		raffle.UpdatedAt = now
		out = ports.TicketReservation{
			Raffle:  raffle,
			Tickets: domain.TicketRange{First: first, Last: first + count - 1},
		}
		return nil
	})
	if err != nil {
		return ports.TicketReservation{}, err
	}
	return out, nil
}

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Append(ctx context.Context, row domain.Transaction) error {
	rec := toTransactionModel(row)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, transactionID string) (domain.Transaction, error) {
	var rec transactionModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, domain.ErrNotFound
		}
		return domain.Transaction{}, err
	}
	return toDomainTransaction(rec), nil
}

// UpdateStatus guards the pending-only transition in the WHERE clause so a
// concurrent approve and reject cannot both win.
func (r *transactionRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason string, at time.Time) (domain.Transaction, error) {
	updates := map[string]any{"status": string(status)}
	switch status {
	case domain.TransactionStatusApproved:
		updates["approved_at"] = at
	case domain.TransactionStatusRejected:
		updates["rejected_at"] = at
		updates["reject_reason"] = reason
	default:
		return domain.Transaction{}, domain.ErrValidation
	}
	res := r.db.WithContext(ctx).Model(&transactionModel{}).
		Where("transaction_id = ? AND status = ?", transactionID, string(domain.TransactionStatusPending)).
		Updates(updates)
	if res.Error != nil {
		return domain.Transaction{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from a non-pending one.
		var rec transactionModel
		if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).Take(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.Transaction{}, domain.ErrNotFound
			}
			return domain.Transaction{}, err
		}
		return domain.Transaction{}, domain.ErrInvalidState
	}
	return r.GetByID(ctx, transactionID)
}

func (r *transactionRepository) ListByCampaignID(ctx context.Context, query ports.TransactionListQuery) ([]domain.Transaction, int, error) {
	q := r.db.WithContext(ctx).Model(&transactionModel{}).Where("campaign_id = ?", query.CampaignID)
	if query.Status != "" {
		q = q.Where("status = ?", string(query.Status))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []transactionModel
	q = q.Order("created_at ASC, transaction_id ASC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit).Offset(query.Offset)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Transaction, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainTransaction(rec))
	}
	return out, int(total), nil
}

type outboxRepository struct {
	db *gorm.DB
}

func (r *outboxRepository) Enqueue(ctx context.Context, record ports.OutboxRecord) error {
	payload, err := json.Marshal(record.Envelope)
	if err != nil {
		return err
	}
	rec := outboxModel{
		RecordID:   record.RecordID,
		EventClass: record.EventClass,
		Envelope:   string(payload),
		CreatedAt:  record.CreatedAt,
		SentAt:     record.SentAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]ports.OutboxRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var recs []outboxModel
	if err := r.db.WithContext(ctx).Where("sent_at IS NULL").Order("created_at ASC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]ports.OutboxRecord, 0, len(recs))
	for _, rec := range recs {
		var envelope contracts.EventEnvelope
		if err := json.Unmarshal([]byte(rec.Envelope), &envelope); err != nil {
			return nil, err
		}
		out = append(out, ports.OutboxRecord{
			RecordID:   rec.RecordID,
			EventClass: rec.EventClass,
			Envelope:   envelope,
			CreatedAt:  rec.CreatedAt,
			SentAt:     rec.SentAt,
		})
	}
	return out, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, recordID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&outboxModel{}).Where("record_id = ?", recordID).Update("sent_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type eventDedupRepository struct {
	db *gorm.DB
}

func (r *eventDedupRepository) IsDuplicate(ctx context.Context, eventID string, now time.Time) (bool, error) {
	var rec eventDedupModel
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if now.After(rec.ExpiresAt) {
		_ = r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&eventDedupModel{}).Error
		return false, nil
	}
	return true, nil
}

func (r *eventDedupRepository) MarkProcessed(ctx context.Context, eventID, eventType string, expiresAt time.Time) error {
	rec := eventDedupModel{EventID: eventID, EventType: eventType, ExpiresAt: expiresAt}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"event_type", "expires_at"}),
	}).Create(&rec).Error
}
