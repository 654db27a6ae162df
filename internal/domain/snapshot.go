package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotal is one day's bucket in the snapshot time series. Day is a UTC
// calendar date formatted as 2006-01-02.
type DailyTotal struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// Snapshot is the derived analytics rollup for a campaign. It is rebuilt
// entirely from the transaction log and holds no independent authority.
type Snapshot struct {
	CampaignID       string          `json:"campaign_id"`
	TotalRaised      decimal.Decimal `json:"total_raised"`
	DonationRevenue  decimal.Decimal `json:"donation_revenue"`
	ProductRevenue   decimal.Decimal `json:"product_revenue"`
	RaffleRevenue    decimal.Decimal `json:"raffle_revenue"`
	TotalDonors      int             `json:"total_donors"`
	CampaignViews    int64           `json:"campaign_views"`
	ProgressOverTime []DailyTotal    `json:"progress_over_time"`
	ComputedAt       time.Time       `json:"computed_at"`
}

// BuildSnapshot folds the approved transactions for a campaign into a
// snapshot. The fold is a pure function of its inputs: equal logs and an
// equal asOf boundary yield bit-identical snapshots regardless of how often
// or when it runs; computed_at is stamped from the boundary, not the clock.
// Transactions after asOf are excluded. Channel totals are order
// independent; the time series is bucketed by UTC day and emitted in
// ascending day order.
func BuildSnapshot(campaignID string, transactions []Transaction, views int64, asOf time.Time) Snapshot {
	out := Snapshot{
		CampaignID:      campaignID,
		TotalRaised:     decimal.Zero,
		DonationRevenue: decimal.Zero,
		ProductRevenue:  decimal.Zero,
		RaffleRevenue:   decimal.Zero,
		CampaignViews:   views,
		ComputedAt:      asOf.UTC(),
	}

	donors := map[string]struct{}{}
	days := map[string]decimal.Decimal{}
	for _, tx := range transactions {
		if tx.Status != TransactionStatusApproved {
			continue
		}
		if tx.CreatedAt.After(asOf) {
			continue
		}
		switch tx.Kind {
		case TransactionKindDonation, TransactionKindCashDonation:
			out.DonationRevenue = out.DonationRevenue.Add(tx.Amount)
		case TransactionKindProductSale:
			out.ProductRevenue = out.ProductRevenue.Add(tx.Amount)
		case TransactionKindRaffleEntry:
			out.RaffleRevenue = out.RaffleRevenue.Add(tx.Amount)
		default:
			continue
		}
		out.TotalRaised = out.TotalRaised.Add(tx.Amount)
		if identity := tx.PayerIdentity(); identity != "" {
			donors[identity] = struct{}{}
		}
		day := tx.CreatedAt.UTC().Format("2006-01-02")
		days[day] = days[day].Add(tx.Amount)
	}
	out.TotalDonors = len(donors)

	out.ProgressOverTime = make([]DailyTotal, 0, len(days))
	for day, amount := range days {
		out.ProgressOverTime = append(out.ProgressOverTime, DailyTotal{Day: day, Amount: amount})
	}
	sort.Slice(out.ProgressOverTime, func(i, j int) bool {
		return out.ProgressOverTime[i].Day < out.ProgressOverTime[j].Day
	})
	return out
}

// ProgressPercent is the raised/goal ratio for display, capped at 100.
func ProgressPercent(raised, goal decimal.Decimal) decimal.Decimal {
	if goal.Sign() <= 0 {
		return decimal.Zero
	}
	pct := raised.Div(goal).Mul(decimal.NewFromInt(100)).Round(1)
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct
}
