package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RaffleStatus string

const (
	RaffleStatusDraft  RaffleStatus = "draft"
	RaffleStatusActive RaffleStatus = "active"
	RaffleStatusClosed RaffleStatus = "closed"
)

// TicketNumberBase is the first ticket number issued for every raffle.
const TicketNumberBase = 1

type Raffle struct {
	RaffleID      string          `json:"raffle_id"`
	CampaignID    string          `json:"campaign_id"`
	Title         string          `json:"title"`
	Prize         string          `json:"prize"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	TotalTickets  int             `json:"total_tickets"`
	TicketsSold   int             `json:"tickets_sold"`
	DrawDate      *time.Time      `json:"draw_date,omitempty"`
	Status        RaffleStatus    `json:"status"`
	WinningTicket *int            `json:"winning_ticket,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TicketRange is a contiguous block of ticket numbers issued by a single
// allocation. First and Last are inclusive and 1-based.
type TicketRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

func (r TicketRange) Count() int { return r.Last - r.First + 1 }

// Numbers expands the range into the individual ticket numbers shown to the
// purchaser as proof of entry.
func (r TicketRange) Numbers() []int {
	out := make([]int, 0, r.Count())
	for n := r.First; n <= r.Last; n++ {
		out = append(out, n)
	}
	return out
}

type RaffleStats struct {
	RaffleID     string          `json:"raffle_id"`
	TicketsSold  int             `json:"tickets_sold"`
	TotalTickets int             `json:"total_tickets"`
	Revenue      decimal.Decimal `json:"revenue"`
	Progress     decimal.Decimal `json:"progress"`
}

func ValidateCreateRaffleInput(campaignID, title string, ticketPrice decimal.Decimal, totalTickets int) error {
	if strings.TrimSpace(campaignID) == "" || strings.TrimSpace(title) == "" {
		return ErrValidation
	}
	if ticketPrice.Sign() < 0 {
		return ErrValidation
	}
	if totalTickets < 1 {
		return ErrValidation
	}
	return nil
}

// Remaining is the number of tickets still available for sale.
func (r Raffle) Remaining() int { return r.TotalTickets - r.TicketsSold }

// AcceptsEntries reports whether tickets may be allocated in the raffle's
// current state. Draft pre-sales are a deployment policy.
func (r Raffle) AcceptsEntries(allowDraftPresales bool) bool {
	switch r.Status {
	case RaffleStatusActive:
		return true
	case RaffleStatusDraft:
		return allowDraftPresales
	default:
		return false
	}
}

// Stats derives the read-only sales summary. Progress is the sold/capacity
// ratio as a percentage; the underlying counts are never capped.
func (r Raffle) Stats() RaffleStats {
	progress := decimal.Zero
	if r.TotalTickets > 0 {
		progress = decimal.NewFromInt(int64(r.TicketsSold)).
			Div(decimal.NewFromInt(int64(r.TotalTickets))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return RaffleStats{
		RaffleID:     r.RaffleID,
		TicketsSold:  r.TicketsSold,
		TotalTickets: r.TotalTickets,
		Revenue:      r.TicketPrice.Mul(decimal.NewFromInt(int64(r.TicketsSold))),
		Progress:     progress,
	}
}
