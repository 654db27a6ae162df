package contracts

import (
	"encoding/json"
	"time"
)

type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventClass    string          `json:"event_class,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PartitionKey  string          `json:"partition_key"`
	SourceService string          `json:"source_service"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion string          `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

type CampaignPublishedPayload struct {
	CampaignID  string `json:"campaign_id"`
	OwnerID     string `json:"owner_id"`
	PublishedAt string `json:"published_at"`
}

type TicketsAllocatedPayload struct {
	RaffleID    string `json:"raffle_id"`
	CampaignID  string `json:"campaign_id"`
	FirstTicket int    `json:"first_ticket"`
	LastTicket  int    `json:"last_ticket"`
	TicketsSold int    `json:"tickets_sold"`
	AllocatedAt string `json:"allocated_at"`
}

type RaffleClosedPayload struct {
	RaffleID      string `json:"raffle_id"`
	CampaignID    string `json:"campaign_id"`
	WinningTicket int    `json:"winning_ticket"`
	ClosedAt      string `json:"closed_at"`
}

type TransactionStatusPayload struct {
	TransactionID string `json:"transaction_id"`
	CampaignID    string `json:"campaign_id"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	ChangedAt     string `json:"changed_at"`
}
