package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/application"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/contracts"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

type Handler struct{ service *application.Service }

func NewHandler(service *application.Service) *Handler { return &Handler{service: service} }

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	campaign, err := h.service.CreateCampaign(r.Context(), actor, application.CreateCampaignInput{
		Title:        strings.TrimSpace(req.Title),
		Goal:         req.Goal,
		DurationDays: req.DurationDays,
		Methods:      req.Methods,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", campaign)
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.GetCampaign(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", campaign)
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	out, err := h.service.ListCampaigns(r.Context(), domain.CampaignStatus(r.URL.Query().Get("status")), limit, offset)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"items": out.Items, "pagination": out.Pagination})
}

func (h *Handler) publishCampaign(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	campaign, err := h.service.PublishCampaign(r.Context(), actor, chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "campaign published", campaign)
}

func (h *Handler) updateCampaignMethods(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.UpdateCampaignMethodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	campaign, err := h.service.UpdateCampaignMethods(r.Context(), actor, chi.URLParam(r, "campaign_id"), req.Methods)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", campaign)
}

func (h *Handler) recordCampaignView(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.RecordCampaignView(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"campaign_views": views})
}

func (h *Handler) createRaffle(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.CreateRaffleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	drawDate, err := parseDrawDate(req.DrawDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "draw_date must be RFC 3339 or YYYY-MM-DD", requestIDFromContext(r.Context()))
		return
	}
	raffle, err := h.service.CreateRaffle(r.Context(), actor, application.CreateRaffleInput{
		CampaignID:   req.CampaignID,
		Title:        strings.TrimSpace(req.Title),
		Prize:        strings.TrimSpace(req.Prize),
		TicketPrice:  req.TicketPrice,
		TotalTickets: req.TotalTickets,
		DrawDate:     drawDate,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "", raffle)
}

func (h *Handler) activateRaffle(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	raffle, err := h.service.ActivateRaffle(r.Context(), actor, chi.URLParam(r, "raffle_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "raffle activated", raffle)
}

func (h *Handler) closeRaffle(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	var req contracts.CloseRaffleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	raffle, err := h.service.CloseRaffle(r.Context(), actor, chi.URLParam(r, "raffle_id"), req.WinningTicket)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "raffle closed", raffle)
}

func (h *Handler) getRaffleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetRaffleStats(r.Context(), chi.URLParam(r, "raffle_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", stats)
}

func (h *Handler) listRaffles(w http.ResponseWriter, r *http.Request) {
	raffles, err := h.service.ListRaffles(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"items": raffles})
}

func paginationParams(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseDrawDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
