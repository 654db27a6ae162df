package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusPublished CampaignStatus = "published"
)

// MethodFlags are the per-campaign fundraising method toggles. A disabled
// method rejects new revenue events for that channel; existing transactions
// are unaffected.
type MethodFlags struct {
	Donations bool `json:"donations"`
	Products  bool `json:"products"`
	Raffles   bool `json:"raffles"`
}

type Campaign struct {
	CampaignID   string          `json:"campaign_id"`
	OwnerID      string          `json:"owner_id"`
	Title        string          `json:"title"`
	Goal         decimal.Decimal `json:"goal"`
	DurationDays int             `json:"duration_days"`
	Methods      MethodFlags     `json:"methods"`
	Status       CampaignStatus  `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func ValidateCreateCampaignInput(ownerID, title string, goal decimal.Decimal, durationDays int) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(title) == "" {
		return ErrValidation
	}
	if goal.Sign() <= 0 {
		return ErrValidation
	}
	if durationDays < 1 {
		return ErrValidation
	}
	return nil
}

// ChannelEnabled reports whether the campaign accepts revenue for the given
// transaction kind.
func (c Campaign) ChannelEnabled(kind TransactionKind) bool {
	switch kind {
	case TransactionKindDonation, TransactionKindCashDonation:
		return c.Methods.Donations
	case TransactionKindProductSale:
		return c.Methods.Products
	case TransactionKindRaffleEntry:
		return c.Methods.Raffles
	default:
		return false
	}
}
