package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/LordLuktor/fundraiser-blocks-theme/internal/domain"
	"github.com/LordLuktor/fundraiser-blocks-theme/internal/ports"
)

// ExportFormatCSV is the only export format the dashboard offers.
const ExportFormatCSV = "csv"

// ExportTransactions renders the full transaction log of a campaign for the
// reporting dashboard's download button.
func (s *Service) ExportTransactions(ctx context.Context, actor Actor, campaignID, format string) ([]byte, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return nil, domain.ErrUnauthorized
	}
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, domain.ErrValidation
	}
	if format != "" && format != ExportFormatCSV {
		return nil, domain.ErrValidation
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	transactions, _, err := s.transactions.ListByCampaignID(ctx, ports.TransactionListQuery{CampaignID: campaignID})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"transaction_id", "kind", "status", "amount", "currency", "payer_name", "payer_email", "raffle_id", "ticket_numbers", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		tickets := ""
		if tx.Tickets != nil {
			parts := make([]string, 0, tx.Tickets.Count())
			for _, n := range tx.Tickets.Numbers() {
				parts = append(parts, strconv.Itoa(n))
			}
			tickets = strings.Join(parts, " ")
		}
		row := []string{
			tx.TransactionID,
			string(tx.Kind),
			string(tx.Status),
			tx.Amount.StringFixed(2),
			tx.Currency,
			tx.PayerName,
			tx.PayerEmail,
			tx.RaffleID,
			tickets,
			tx.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
