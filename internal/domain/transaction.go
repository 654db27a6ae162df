package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string
type TransactionStatus string

const (
	TransactionKindDonation     TransactionKind = "donation"
	TransactionKindProductSale  TransactionKind = "product_sale"
	TransactionKindCashDonation TransactionKind = "cash_donation"
	TransactionKindRaffleEntry  TransactionKind = "raffle_entry"
)

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// Transaction is the append-only record of money received through any
// channel. Approved transactions are immutable; corrections are new
// compensating transactions, never in-place edits.
type Transaction struct {
	TransactionID string            `json:"transaction_id"`
	CampaignID    string            `json:"campaign_id"`
	Kind          TransactionKind   `json:"kind"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	PayerName     string            `json:"payer_name,omitempty"`
	PayerEmail    string            `json:"payer_email,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	RaffleID      string            `json:"raffle_id,omitempty"`
	TicketCount   int               `json:"ticket_count,omitempty"`
	Tickets       *TicketRange      `json:"tickets,omitempty"`
	Status        TransactionStatus `json:"status"`
	RejectReason  string            `json:"reject_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
	RejectedAt    *time.Time        `json:"rejected_at,omitempty"`
}

func ValidateManualKind(kind TransactionKind) error {
	switch kind {
	case TransactionKindCashDonation, TransactionKindRaffleEntry:
		return nil
	default:
		return ErrValidation
	}
}

func ValidateTransactionAmount(amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return ErrValidation
	}
	return nil
}

// PayerIdentity is the key used to deduplicate donors in analytics. Email
// wins over name because manual entries often repeat the same display name.
func (t Transaction) PayerIdentity() string {
	if email := strings.ToLower(strings.TrimSpace(t.PayerEmail)); email != "" {
		return email
	}
	return strings.ToLower(strings.TrimSpace(t.PayerName))
}
