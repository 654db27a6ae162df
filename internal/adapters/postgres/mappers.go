package postgres

import (
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
)

func toCampaignModel(row domain.Campaign) campaignModel {
	return campaignModel{
		CampaignID:   row.CampaignID,
		OwnerID:      row.OwnerID,
		Title:        row.Title,
		Goal:         row.Goal,
		DurationDays: row.DurationDays,
		Donations:    row.Methods.Donations,
		Products:     row.Methods.Products,
		Raffles:      row.Methods.Raffles,
		Status:       string(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toDomainCampaign(rec campaignModel) domain.Campaign {
	return domain.Campaign{
		CampaignID:   rec.CampaignID,
		OwnerID:      rec.OwnerID,
		Title:        rec.Title,
		Goal:         rec.Goal,
		DurationDays: rec.DurationDays,
		Methods: domain.MethodFlags{
			Donations: rec.Donations,
			Products:  rec.Products,
			Raffles:   rec.Raffles,
		},
		Status:    domain.CampaignStatus(rec.Status),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toRaffleModel(row domain.Raffle) raffleModel {
	return raffleModel{
		RaffleID:      row.RaffleID,
		CampaignID:    row.CampaignID,
		Title:         row.Title,
		Prize:         row.Prize,
		TicketPrice:   row.TicketPrice,
		TotalTickets:  row.TotalTickets,
		TicketsSold:   row.TicketsSold,
		DrawDate:      row.DrawDate,
		Status:        string(row.Status),
		WinningTicket: row.WinningTicket,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toDomainRaffle(rec raffleModel) domain.Raffle {
	return domain.Raffle{
		RaffleID:      rec.RaffleID,
		CampaignID:    rec.CampaignID,
		Title:         rec.Title,
		Prize:         rec.Prize,
		TicketPrice:   rec.TicketPrice,
		TotalTickets:  rec.TotalTickets,
		TicketsSold:   rec.TicketsSold,
		DrawDate:      rec.DrawDate,
		Status:        domain.RaffleStatus(rec.Status),
		WinningTicket: rec.WinningTicket,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func toTransactionModel(row domain.Transaction) transactionModel {
	rec := transactionModel{
		TransactionID: row.TransactionID,
		CampaignID:    row.CampaignID,
		Kind:          string(row.Kind),
		Amount:        row.Amount,
		Currency:      row.Currency,
		PayerName:     row.PayerName,
		PayerEmail:    row.PayerEmail,
		PaymentMethod: row.PaymentMethod,
		Notes:         row.Notes,
		TicketCount:   row.TicketCount,
		Status:        string(row.Status),
		RejectReason:  row.RejectReason,
		CreatedAt:     row.CreatedAt,
		ApprovedAt:    row.ApprovedAt,
		RejectedAt:    row.RejectedAt,
	}
	if row.RaffleID != "" {
		raffleID := row.RaffleID
		rec.RaffleID = &raffleID
	}
	if row.Tickets != nil {
		first, last := row.Tickets.First, row.Tickets.Last
		rec.FirstTicket = &first
		rec.LastTicket = &last
	}
	return rec
}

func toDomainTransaction(rec transactionModel) domain.Transaction {
	row := domain.Transaction{
		TransactionID: rec.TransactionID,
		CampaignID:    rec.CampaignID,
		Kind:          domain.TransactionKind(rec.Kind),
		Amount:        rec.Amount,
		Currency:      rec.Currency,
		PayerName:     rec.PayerName,
		PayerEmail:    rec.PayerEmail,
		PaymentMethod: rec.PaymentMethod,
		Notes:         rec.Notes,
		TicketCount:   rec.TicketCount,
		Status:        domain.TransactionStatus(rec.Status),
		RejectReason:  rec.RejectReason,
		CreatedAt:     rec.CreatedAt,
		ApprovedAt:    rec.ApprovedAt,
		RejectedAt:    rec.RejectedAt,
	}
	if rec.RaffleID != nil {
		row.RaffleID = *rec.RaffleID
	}
	if rec.FirstTicket != nil && rec.LastTicket != nil {
		row.Tickets = &domain.TicketRange{First: *rec.FirstTicket, Last: *rec.LastTicket}
	}
	return row
}
