package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type CreateCampaignRequest struct {
	Title        string             `json:"title"`
	Goal         decimal.Decimal    `json:"goal"`
	DurationDays int                `json:"duration_days"`
	Methods      domain.MethodFlags `json:"methods"`
}

type UpdateCampaignMethodsRequest struct {
	Methods domain.MethodFlags `json:"methods"`
}

type CreateRaffleRequest struct {
	CampaignID   string          `json:"campaign_id"`
	Title        string          `json:"title"`
	Prize        string          `json:"prize"`
	TicketPrice  decimal.Decimal `json:"ticket_price"`
	TotalTickets int             `json:"total_tickets"`
	DrawDate     string          `json:"draw_date,omitempty"`
}

type CloseRaffleRequest struct {
	WinningTicket int `json:"winning_ticket"`
}

type CashDonationRequest struct {
	CampaignID    string          `json:"campaign_id"`
	DonorName     string          `json:"donor_name"`
	DonorEmail    string          `json:"donor_email,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

type RaffleEntryRequest struct {
	RaffleID         string          `json:"raffle_id"`
	ParticipantName  string          `json:"participant_name"`
	ParticipantEmail string          `json:"participant_email,omitempty"`
	TicketCount      int             `json:"ticket_count"`
	Amount           decimal.Decimal `json:"amount"`
}

type RaffleEntryResponse struct {
	TransactionID string `json:"transaction_id"`
	RaffleID      string `json:"raffle_id"`
	TicketNumbers []int  `json:"ticket_numbers"`
	TicketsSold   int    `json:"tickets_sold"`
	Status        string `json:"status"`
}

// DonationWebhookRequest mirrors what the payment processor posts after it
// has already verified the charge.
type DonationWebhookRequest struct {
	ProviderEventID string          `json:"provider_event_id"`
	CampaignID      string          `json:"campaign_id"`
	DonorName       string          `json:"donor_name,omitempty"`
	DonorEmail      string          `json:"donor_email,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
}

type OrderWebhookRequest struct {
	ProviderEventID string          `json:"provider_event_id"`
	CampaignID      string          `json:"campaign_id"`
	BuyerName       string          `json:"buyer_name,omitempty"`
	BuyerEmail      string          `json:"buyer_email,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
}

type RejectTransactionRequest struct {
	Reason string `json:"reason"`
}
