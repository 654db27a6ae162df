package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/contracts"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

// FlushOutbox drains pending outbox records to the configured publishers.
// Called periodically by the events worker.
func (s *Service) FlushOutbox(ctx context.Context) error {
	if s.outbox == nil {
		return nil
	}
	pending, err := s.outbox.ListPending(ctx, s.cfg.OutboxFlushBatchSize)
	if err != nil {
		return err
	}
	for _, rec := range pending {
		switch rec.EventClass {
		case domain.CanonicalEventClassDomain:
			if s.domainEvents != nil {
				if err := s.domainEvents.PublishDomain(ctx, rec.Envelope); err != nil {
					return err
				}
			}
		case domain.CanonicalEventClassAnalyticsOnly:
			if s.analytics != nil {
				_ = s.analytics.PublishAnalytics(ctx, rec.Envelope)
			}
		default:
			return fmt.Errorf("unsupported event class %q", rec.EventClass)
		}
		if err := s.outbox.MarkSent(ctx, rec.RecordID, s.nowFn()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) enqueueEvent(ctx context.Context, eventType, traceID, partitionKey string, data any, now time.Time) error {
	if s.outbox == nil {
		return nil
	}
	if !domain.IsCanonicalEmittedEvent(eventType) {
		return fmt.Errorf("unsupported event type %q", eventType)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return domain.ErrValidation
	}
	if strings.TrimSpace(traceID) == "" {
		traceID = uuid.NewString()
	}
	env := contracts.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventClass:    domain.CanonicalEventClass(eventType),
		OccurredAt:    now,
		PartitionKey:  partitionKey,
		SourceService: s.cfg.ServiceName,
		TraceID:       traceID,
		SchemaVersion: "v1",
		Data:          b,
	}
	return s.outbox.Enqueue(ctx, ports.OutboxRecord{
		RecordID:   uuid.NewString(),
		EventClass: env.EventClass,
		Envelope:   env,
		CreatedAt:  now,
	})
}

func (s *Service) enqueueCampaignPublished(ctx context.Context, campaign domain.Campaign, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventCampaignPublished, traceID, campaign.CampaignID, contracts.CampaignPublishedPayload{
		CampaignID:  campaign.CampaignID,
		OwnerID:     campaign.OwnerID,
		PublishedAt: now.Format(time.RFC3339),
	}, now)
}

func (s *Service) enqueueTicketsAllocated(ctx context.Context, reservation ports.TicketReservation, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventTicketsAllocated, traceID, reservation.Raffle.RaffleID, contracts.TicketsAllocatedPayload{
		RaffleID:    reservation.Raffle.RaffleID,
		CampaignID:  reservation.Raffle.CampaignID,
		FirstTicket: reservation.Tickets.First,
		LastTicket:  reservation.Tickets.Last,
		TicketsSold: reservation.Raffle.TicketsSold,
		AllocatedAt: now.Format(time.RFC3339),
	}, now)
}

func (s *Service) enqueueRaffleClosed(ctx context.Context, raffle domain.Raffle, winningTicket int, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, domain.EventRaffleClosed, traceID, raffle.RaffleID, contracts.RaffleClosedPayload{
		RaffleID:      raffle.RaffleID,
		CampaignID:    raffle.CampaignID,
		WinningTicket: winningTicket,
		ClosedAt:      now.Format(time.RFC3339),
	}, now)
}

func (s *Service) enqueueTransactionStatus(ctx context.Context, eventType string, tx domain.Transaction, traceID string, now time.Time) error {
	return s.enqueueEvent(ctx, eventType, traceID, tx.CampaignID, contracts.TransactionStatusPayload{
		TransactionID: tx.TransactionID,
		CampaignID:    tx.CampaignID,
		Kind:          string(tx.Kind),
		Amount:        tx.Amount.String(),
		Status:        string(tx.Status),
		ChangedAt:     now.Format(time.RFC3339),
	}, now)
}
