package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

func (s *Service) CreateRaffle(ctx context.Context, actor Actor, input CreateRaffleInput) (domain.Raffle, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Raffle{}, domain.ErrUnauthorized
	}
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.Title = strings.TrimSpace(input.Title)
	if err := domain.ValidateCreateRaffleInput(input.CampaignID, input.Title, input.TicketPrice, input.TotalTickets); err != nil {
		return domain.Raffle{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Raffle{}, domain.ErrValidation
		}
		return domain.Raffle{}, err
	}
	if !actor.isAdmin() && campaign.OwnerID != actor.SubjectID {
		return domain.Raffle{}, domain.ErrForbidden
	}
	if !campaign.Methods.Raffles {
		return domain.Raffle{}, domain.ErrInvalidState
	}
	now := s.nowFn()
	raffle := domain.Raffle{
		RaffleID:     uuid.NewString(),
		CampaignID:   input.CampaignID,
		Title:        input.Title,
		Prize:        strings.TrimSpace(input.Prize),
		TicketPrice:  input.TicketPrice,
		TotalTickets: input.TotalTickets,
		TicketsSold:  0,
		DrawDate:     input.DrawDate,
		Status:       domain.RaffleStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.raffles.Create(ctx, raffle); err != nil {
		return domain.Raffle{}, err
	}
	return raffle, nil
}

func (s *Service) ActivateRaffle(ctx context.Context, actor Actor, raffleID string) (domain.Raffle, error) {
	raffle, err := s.ownedRaffle(ctx, actor, raffleID)
	if err != nil {
		return domain.Raffle{}, err
	}
	switch raffle.Status {
	case domain.RaffleStatusActive:
		return raffle, nil
	case domain.RaffleStatusClosed:
		return domain.Raffle{}, domain.ErrInvalidState
	}
	raffle.Status = domain.RaffleStatusActive
	raffle.UpdatedAt = s.nowFn()
	if err := s.raffles.Update(ctx, raffle); err != nil {
		return domain.Raffle{}, err
	}
	return raffle, nil
}

// AllocateTickets issues a contiguous block of ticket numbers and records the
// raffle-entry transaction. The reserve step is indivisible: either the whole
// requested block is granted or nothing is. Ticket numbers are permanently
// consumed once issued, even if the transaction is later rejected.
func (s *Service) AllocateTickets(ctx context.Context, actor Actor, input AllocateTicketsInput) (AllocationResult, error) {
	input.RaffleID = strings.TrimSpace(input.RaffleID)
	input.PurchaserName = strings.TrimSpace(input.PurchaserName)
	if input.RaffleID == "" || input.TicketCount < 1 {
		return AllocationResult{}, domain.ErrValidation
	}
	if input.Amount.Sign() < 0 {
		return AllocationResult{}, domain.ErrValidation
	}
	if input.Source == AllocationSourceManual && input.PurchaserName == "" {
		return AllocationResult{}, domain.ErrValidation
	}

	raffle, err := s.raffles.GetByID(ctx, input.RaffleID)
	if err != nil {
		return AllocationResult{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, raffle.CampaignID)
	if err != nil {
		return AllocationResult{}, err
	}
	// Checked before reserving so a disabled channel never consumes ticket
	// numbers.
	if !campaign.ChannelEnabled(domain.TransactionKindRaffleEntry) {
		return AllocationResult{}, domain.ErrInvalidState
	}

	reservation, err := s.reserveWithRetry(ctx, input.RaffleID, input.TicketCount)
	if err != nil {
		return AllocationResult{}, err
	}

	status := domain.TransactionStatusApproved
	if input.Source == AllocationSourceManual {
		status = domain.TransactionStatusPending
	}
	now := s.nowFn()
	tickets := reservation.Tickets
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		CampaignID:    reservation.Raffle.CampaignID,
		Kind:          domain.TransactionKindRaffleEntry,
		Amount:        input.Amount,
		Currency:      s.cfg.DefaultCurrency,
		PayerName:     input.PurchaserName,
		PayerEmail:    strings.TrimSpace(input.PurchaserEmail),
		RaffleID:      reservation.Raffle.RaffleID,
		TicketCount:   tickets.Count(),
		Tickets:       &tickets,
		Status:        status,
		CreatedAt:     now,
	}
	if status == domain.TransactionStatusApproved {
		tx.ApprovedAt = &now
	}
	if err := s.transactions.Append(ctx, tx); err != nil {
		return AllocationResult{}, err
	}
	if status == domain.TransactionStatusApproved {
		s.invalidateSnapshot(ctx, tx.CampaignID)
	}
	if err := s.enqueueTicketsAllocated(ctx, reservation, actor.RequestID, now); err != nil {
		return AllocationResult{}, err
	}
	return AllocationResult{Transaction: tx, TicketNumbers: tickets.Numbers()}, nil
}

func (s *Service) reserveWithRetry(ctx context.Context, raffleID string, count int) (ports.TicketReservation, error) {
	var lastErr error
	for attempt := 0; attempt < s.cfg.AllocationRetryBudget; attempt++ {
		reservation, err := s.raffles.ReserveTickets(ctx, raffleID, count, s.cfg.AllowDraftPresales)
		if err == nil {
			return reservation, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return ports.TicketReservation{}, err
		}
		lastErr = err
	}
	return ports.TicketReservation{}, lastErr
}

func (s *Service) CloseRaffle(ctx context.Context, actor Actor, raffleID string, winningTicket int) (domain.Raffle, error) {
	raffle, err := s.ownedRaffle(ctx, actor, raffleID)
	if err != nil {
		return domain.Raffle{}, err
	}
	if raffle.Status == domain.RaffleStatusClosed {
		return domain.Raffle{}, domain.ErrInvalidState
	}
	// Issued numbers are exactly 1..tickets_sold; a winner outside that set
	// was never sold.
	if winningTicket < domain.TicketNumberBase || winningTicket > raffle.TicketsSold {
		return domain.Raffle{}, domain.ErrValidation
	}
	now := s.nowFn()
	raffle.Status = domain.RaffleStatusClosed
	raffle.WinningTicket = &winningTicket
	raffle.UpdatedAt = now
	if err := s.raffles.Update(ctx, raffle); err != nil {
		return domain.Raffle{}, err
	}
	if err := s.enqueueRaffleClosed(ctx, raffle, winningTicket, actor.RequestID, now); err != nil {
		return domain.Raffle{}, err
	}
	return raffle, nil
}

func (s *Service) GetRaffleStats(ctx context.Context, raffleID string) (domain.RaffleStats, error) {
	raffleID = strings.TrimSpace(raffleID)
	if raffleID == "" {
		return domain.RaffleStats{}, domain.ErrValidation
	}
	raffle, err := s.raffles.GetByID(ctx, raffleID)
	if err != nil {
		return domain.RaffleStats{}, err
	}
	return raffle.Stats(), nil
}

func (s *Service) ListRaffles(ctx context.Context, campaignID string) ([]domain.Raffle, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, domain.ErrValidation
	}
	return s.raffles.ListByCampaignID(ctx, campaignID)
}

func (s *Service) ownedRaffle(ctx context.Context, actor Actor, raffleID string) (domain.Raffle, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Raffle{}, domain.ErrUnauthorized
	}
	raffleID = strings.TrimSpace(raffleID)
	if raffleID == "" {
		return domain.Raffle{}, domain.ErrValidation
	}
	raffle, err := s.raffles.GetByID(ctx, raffleID)
	if err != nil {
		return domain.Raffle{}, err
	}
	if !actor.isAdmin() {
		campaign, err := s.campaigns.GetByID(ctx, raffle.CampaignID)
		if err != nil {
			return domain.Raffle{}, err
		}
		if campaign.OwnerID != actor.SubjectID {
			return domain.Raffle{}, domain.ErrForbidden
		}
	}
	return raffle, nil
}
