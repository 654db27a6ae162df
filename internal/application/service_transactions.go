package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

// SubmitCashDonation records a manually entered cash donation. The
// transaction stays pending until an organizer approves it on the dashboard.
func (s *Service) SubmitCashDonation(ctx context.Context, actor Actor, input CashDonationInput) (domain.Transaction, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Transaction{}, domain.ErrUnauthorized
	}
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	input.DonorName = strings.TrimSpace(input.DonorName)
	if input.CampaignID == "" || input.DonorName == "" || input.Amount.Sign() <= 0 {
		return domain.Transaction{}, domain.ErrValidation
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if !campaign.Methods.Donations {
		return domain.Transaction{}, domain.ErrInvalidState
	}
	method := strings.TrimSpace(input.PaymentMethod)
	if method == "" {
		method = "cash"
	}
	now := s.nowFn()
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		CampaignID:    input.CampaignID,
		Kind:          domain.TransactionKindCashDonation,
		Amount:        input.Amount,
		Currency:      s.cfg.DefaultCurrency,
		PayerName:     input.DonorName,
		PayerEmail:    strings.TrimSpace(input.DonorEmail),
		PaymentMethod: method,
		Notes:         strings.TrimSpace(input.Notes),
		Status:        domain.TransactionStatusPending,
		CreatedAt:     now,
	}
	if err := s.transactions.Append(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.enqueueTransactionStatus(ctx, domain.EventTransactionRecorded, tx, actor.RequestID, now); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// SubmitRaffleEntry is the manual-entry path: allocate the tickets, then
// record a pending raffle-entry transaction carrying the issued numbers.
func (s *Service) SubmitRaffleEntry(ctx context.Context, actor Actor, input AllocateTicketsInput) (AllocationResult, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return AllocationResult{}, domain.ErrUnauthorized
	}
	input.Source = AllocationSourceManual
	return s.AllocateTickets(ctx, actor, input)
}

// HandleDonationWebhook records an already-verified online donation as an
// approved transaction. Provider events are deduplicated so processor
// retries cannot double count.
func (s *Service) HandleDonationWebhook(ctx context.Context, input WebhookInput) (domain.Transaction, error) {
	return s.recordWebhookTransaction(ctx, domain.TransactionKindDonation, input)
}

// HandleOrderWebhook records a completed product order from the storefront.
func (s *Service) HandleOrderWebhook(ctx context.Context, input WebhookInput) (domain.Transaction, error) {
	return s.recordWebhookTransaction(ctx, domain.TransactionKindProductSale, input)
}

func (s *Service) recordWebhookTransaction(ctx context.Context, kind domain.TransactionKind, input WebhookInput) (domain.Transaction, error) {
	input.ProviderEventID = strings.TrimSpace(input.ProviderEventID)
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	if input.ProviderEventID == "" || input.CampaignID == "" {
		return domain.Transaction{}, domain.ErrValidation
	}
	if err := domain.ValidateTransactionAmount(input.Amount); err != nil {
		return domain.Transaction{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.Transaction{}, err
	}
	if !campaign.ChannelEnabled(kind) {
		return domain.Transaction{}, domain.ErrInvalidState
	}

	now := s.nowFn()
	duplicate, err := s.eventDedup.IsDuplicate(ctx, input.ProviderEventID, now)
	if err != nil {
		return domain.Transaction{}, err
	}
	if duplicate {
		return domain.Transaction{}, domain.ErrDuplicateEvent
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		CampaignID:    input.CampaignID,
		Kind:          kind,
		Amount:        input.Amount,
		Currency:      currency,
		PayerName:     strings.TrimSpace(input.PayerName),
		PayerEmail:    strings.TrimSpace(input.PayerEmail),
		Status:        domain.TransactionStatusApproved,
		CreatedAt:     now,
		ApprovedAt:    &now,
	}
	if err := s.transactions.Append(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.eventDedup.MarkProcessed(ctx, input.ProviderEventID, string(kind), now.Add(s.cfg.EventDedupTTL)); err != nil {
		return domain.Transaction{}, err
	}
	s.invalidateSnapshot(ctx, tx.CampaignID)
	if err := s.enqueueTransactionStatus(ctx, domain.EventTransactionApproved, tx, "", now); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// ApproveTransaction transitions a manually entered transaction from pending
// to approved and invalidates the campaign's analytics snapshot.
func (s *Service) ApproveTransaction(ctx context.Context, actor Actor, transactionID string) (domain.Transaction, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Transaction{}, domain.ErrUnauthorized
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domain.Transaction{}, domain.ErrValidation
	}
	now := s.nowFn()
	tx, err := s.transactions.UpdateStatus(ctx, transactionID, domain.TransactionStatusApproved, "", now)
	if err != nil {
		return domain.Transaction{}, err
	}
	s.invalidateSnapshot(ctx, tx.CampaignID)
	if err := s.enqueueTransactionStatus(ctx, domain.EventTransactionApproved, tx, actor.RequestID, now); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// RejectTransaction transitions pending to rejected. A rejected raffle entry
// keeps its ticket numbers: tickets_sold is never decremented and the block
// is flagged void rather than recycled, preserving the no-reuse invariant.
func (s *Service) RejectTransaction(ctx context.Context, actor Actor, transactionID, reason string) (domain.Transaction, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Transaction{}, domain.ErrUnauthorized
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return domain.Transaction{}, domain.ErrValidation
	}
	now := s.nowFn()
	tx, err := s.transactions.UpdateStatus(ctx, transactionID, domain.TransactionStatusRejected, strings.TrimSpace(reason), now)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.enqueueTransactionStatus(ctx, domain.EventTransactionRejected, tx, actor.RequestID, now); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

func (s *Service) GetTransaction(ctx context.Context, actor Actor, transactionID string) (domain.Transaction, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.Transaction{}, domain.ErrUnauthorized
	}
	return s.transactions.GetByID(ctx, strings.TrimSpace(transactionID))
}

func (s *Service) ListPendingTransactions(ctx context.Context, actor Actor, campaignID string, limit, offset int) (ListTransactionsOutput, error) {
	return s.listTransactions(ctx, actor, campaignID, domain.TransactionStatusPending, limit, offset)
}

func (s *Service) ListTransactions(ctx context.Context, actor Actor, campaignID string, status domain.TransactionStatus, limit, offset int) (ListTransactionsOutput, error) {
	return s.listTransactions(ctx, actor, campaignID, status, limit, offset)
}

func (s *Service) listTransactions(ctx context.Context, actor Actor, campaignID string, status domain.TransactionStatus, limit, offset int) (ListTransactionsOutput, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return ListTransactionsOutput{}, domain.ErrUnauthorized
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return ListTransactionsOutput{}, domain.ErrValidation
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.transactions.ListByCampaignID(ctx, ports.TransactionListQuery{
		CampaignID: campaignID,
		Status:     status,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return ListTransactionsOutput{}, err
	}
	return ListTransactionsOutput{
		Items:      items,
		Pagination: Pagination{Limit: limit, Offset: offset, Total: total},
	}, nil
}
