package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/contracts"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func (h *Handler) submitCashDonation(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.CashDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	tx, err := h.service.SubmitCashDonation(r.Context(), actor, application.CashDonationInput{
		CampaignID:    req.CampaignID,
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorEmail:    strings.TrimSpace(req.DonorEmail),
		Amount:        req.Amount,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "cash donation recorded", tx)
}

func (h *Handler) submitRaffleEntry(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.RaffleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	result, err := h.service.SubmitRaffleEntry(r.Context(), actor, application.AllocateTicketsInput{
		RaffleID:       req.RaffleID,
		TicketCount:    req.TicketCount,
		PurchaserName:  strings.TrimSpace(req.ParticipantName),
		PurchaserEmail: strings.TrimSpace(req.ParticipantEmail),
		Amount:         req.Amount,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "raffle entry recorded", contracts.RaffleEntryResponse{
		TransactionID: result.Transaction.TransactionID,
		RaffleID:      result.Transaction.RaffleID,
		TicketNumbers: result.TicketNumbers,
		TicketsSold:   result.TicketNumbers[len(result.TicketNumbers)-1],
		Status:        string(result.Transaction.Status),
	})
}

func (h *Handler) donationWebhook(w http.ResponseWriter, r *http.Request) {
	var req contracts.DonationWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	tx, err := h.service.HandleDonationWebhook(r.Context(), application.WebhookInput{
		ProviderEventID: req.ProviderEventID,
		CampaignID:      req.CampaignID,
		PayerName:       strings.TrimSpace(req.DonorName),
		PayerEmail:      strings.TrimSpace(req.DonorEmail),
		Amount:          req.Amount,
		Currency:        req.Currency,
	})
	h.writeWebhookResult(w, r, tx, err)
}

func (h *Handler) orderWebhook(w http.ResponseWriter, r *http.Request) {
	var req contracts.OrderWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	tx, err := h.service.HandleOrderWebhook(r.Context(), application.WebhookInput{
		ProviderEventID: req.ProviderEventID,
		CampaignID:      req.CampaignID,
		PayerName:       strings.TrimSpace(req.BuyerName),
		PayerEmail:      strings.TrimSpace(req.BuyerEmail),
		Amount:          req.Amount,
		Currency:        req.Currency,
	})
	h.writeWebhookResult(w, r, tx, err)
}

// Processors retry on non-2xx, so a replayed event id acknowledges with 200
// instead of surfacing a conflict.
func (h *Handler) writeWebhookResult(w http.ResponseWriter, r *http.Request, tx domain.Transaction, err error) {
	if errors.Is(err, domain.ErrDuplicateEvent) {
		writeSuccess(w, http.StatusOK, "duplicate event ignored", nil)
		return
	}
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", tx)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	tx, err := h.service.GetTransaction(r.Context(), actor, chi.URLParam(r, "transaction_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", tx)
}

func (h *Handler) approveTransaction(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	tx, err := h.service.ApproveTransaction(r.Context(), actor, chi.URLParam(r, "transaction_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "transaction approved", tx)
}

func (h *Handler) rejectTransaction(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.RejectTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	tx, err := h.service.RejectTransaction(r.Context(), actor, chi.URLParam(r, "transaction_id"), strings.TrimSpace(req.Reason))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "transaction rejected", tx)
}

func (h *Handler) listPendingTransactions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	limit, offset := paginationParams(r)
	out, err := h.service.ListPendingTransactions(r.Context(), actor, chi.URLParam(r, "campaign_id"), limit, offset)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"items": out.Items, "pagination": out.Pagination})
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	limit, offset := paginationParams(r)
	out, err := h.service.ListTransactions(r.Context(), actor, chi.URLParam(r, "campaign_id"), domain.TransactionStatus(r.URL.Query().Get("status")), limit, offset)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"items": out.Items, "pagination": out.Pagination})
}

func (h *Handler) exportTransactions(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	campaignID := chi.URLParam(r, "campaign_id")
	payload, err := h.service.ExportTransactions(r.Context(), actor, campaignID, r.URL.Query().Get("format"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="campaign-`+campaignID+`-transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) getCampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetSnapshot(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", snapshot)
}

func (h *Handler) recomputeCampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	var asOf *time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "as_of must be RFC 3339", requestIDFromContext(r.Context()))
			return
		}
		t = t.UTC()
		asOf = &t
	}
	snapshot, err := h.service.ComputeSnapshot(r.Context(), chi.URLParam(r, "campaign_id"), asOf)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", snapshot)
}
