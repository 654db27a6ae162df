package domain

const (
	CanonicalEventClassDomain        = "domain"
	CanonicalEventClassAnalyticsOnly = "analytics_only"
)

const (
	EventCampaignPublished    = "campaign.published"
	EventTicketsAllocated     = "raffle.tickets_allocated"
	EventRaffleClosed         = "raffle.closed"
	EventTransactionRecorded  = "transaction.recorded"
	EventTransactionApproved  = "transaction.approved"
	EventTransactionRejected  = "transaction.rejected"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventCampaignPublished, EventTicketsAllocated, EventRaffleClosed,
		EventTransactionRecorded, EventTransactionApproved, EventTransactionRejected:
		return true
	default:
		return false
	}
}

func CanonicalEventClass(eventType string) string {
	switch eventType {
	case EventTransactionApproved, EventTransactionRejected, EventRaffleClosed:
		return CanonicalEventClassDomain
	case EventCampaignPublished, EventTicketsAllocated, EventTransactionRecorded:
		return CanonicalEventClassAnalyticsOnly
	default:
		return ""
	}
}
