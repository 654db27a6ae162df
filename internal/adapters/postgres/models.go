package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type campaignModel struct {
	CampaignID   string          `gorm:"column:campaign_id;primaryKey"`
	OwnerID      string          `gorm:"column:owner_id"`
	Title        string          `gorm:"column:title"`
	Goal         decimal.Decimal `gorm:"column:goal;type:numeric(14,2)"`
	DurationDays int             `gorm:"column:duration_days"`
	Donations    bool            `gorm:"column:donations_enabled"`
	Products     bool            `gorm:"column:products_enabled"`
	Raffles      bool            `gorm:"column:raffles_enabled"`
	Status       string          `gorm:"column:status"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "fundraiser_campaigns" }

type raffleModel struct {
	RaffleID      string          `gorm:"column:raffle_id;primaryKey"`
	CampaignID    string          `gorm:"column:campaign_id;index"`
	Title         string          `gorm:"column:title"`
	Prize         string          `gorm:"column:prize"`
	TicketPrice   decimal.Decimal `gorm:"column:ticket_price;type:numeric(14,2)"`
	TotalTickets  int             `gorm:"column:total_tickets"`
	TicketsSold   int             `gorm:"column:tickets_sold"`
	DrawDate      *time.Time      `gorm:"column:draw_date"`
	Status        string          `gorm:"column:status"`
	WinningTicket *int            `gorm:"column:winning_ticket"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (raffleModel) TableName() string { return "fundraiser_raffles" }

type transactionModel struct {
	TransactionID string          `gorm:"column:transaction_id;primaryKey"`
	CampaignID    string          `gorm:"column:campaign_id;index"`
	Kind          string          `gorm:"column:kind"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(14,2)"`
	Currency      string          `gorm:"column:currency"`
	PayerName     string          `gorm:"column:payer_name"`
	PayerEmail    string          `gorm:"column:payer_email"`
	PaymentMethod string          `gorm:"column:payment_method"`
	Notes         string          `gorm:"column:notes"`
	RaffleID      *string         `gorm:"column:raffle_id"`
	TicketCount   int             `gorm:"column:ticket_count"`
	FirstTicket   *int            `gorm:"column:first_ticket"`
	LastTicket    *int            `gorm:"column:last_ticket"`
	Status        string          `gorm:"column:status"`
	RejectReason  string          `gorm:"column:reject_reason"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	ApprovedAt    *time.Time      `gorm:"column:approved_at"`
	RejectedAt    *time.Time      `gorm:"column:rejected_at"`
}

func (transactionModel) TableName() string { return "fundraiser_transactions" }

type outboxModel struct {
	RecordID   string     `gorm:"column:record_id;primaryKey"`
	EventClass string     `gorm:"column:event_class"`
	Envelope   string     `gorm:"column:envelope;type:jsonb"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	SentAt     *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string { return "fundraiser_outbox" }

type eventDedupModel struct {
	EventID   string    `gorm:"column:event_id;primaryKey"`
	EventType string    `gorm:"column:event_type"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (eventDedupModel) TableName() string { return "fundraiser_event_dedup" }
