package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the public surface. Webhooks and view tracking stay
// outside the bearer-auth group: processors sign their own payloads and
// views come from anonymous visitors.
func NewRouter(handler *Handler, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ready", nil) })

	r.Route("/v1", func(r chi.Router) {
		r.Post("/webhooks/donations", handler.donationWebhook)
		r.Post("/webhooks/orders", handler.orderWebhook)
		r.Post("/campaigns/{campaign_id}/views", handler.recordCampaignView)
		r.Get("/campaigns/{campaign_id}", handler.getCampaign)
		r.Get("/campaigns/{campaign_id}/analytics", handler.getCampaignAnalytics)
		r.Get("/campaigns/{campaign_id}/raffles", handler.listRaffles)
		r.Get("/raffles/{raffle_id}/stats", handler.getRaffleStats)

		r.Group(func(r chi.Router) {
			r.Use(newAuthMiddleware(jwtSecret))

			r.Post("/campaigns", handler.createCampaign)
			r.Get("/campaigns", handler.listCampaigns)
			r.Post("/campaigns/{campaign_id}/publish", handler.publishCampaign)
			r.Patch("/campaigns/{campaign_id}/methods", handler.updateCampaignMethods)
			r.Post("/campaigns/{campaign_id}/analytics/recompute", handler.recomputeCampaignAnalytics)
			r.Get("/campaigns/{campaign_id}/transactions", handler.listTransactions)
			r.Get("/campaigns/{campaign_id}/transactions/pending", handler.listPendingTransactions)
			r.Get("/campaigns/{campaign_id}/export", handler.exportTransactions)

			r.Post("/raffles", handler.createRaffle)
			r.Post("/raffles/{raffle_id}/activate", handler.activateRaffle)
			r.Post("/raffles/{raffle_id}/close", handler.closeRaffle)

			r.Post("/cash-transactions", handler.submitCashDonation)
			r.Post("/raffle-entries", handler.submitRaffleEntry)
			r.Get("/transactions/{transaction_id}", handler.getTransaction)
			r.Post("/transactions/{transaction_id}/approve", handler.approveTransaction)
			r.Post("/transactions/{transaction_id}/reject", handler.rejectTransaction)
		})
	})
	return r
}
