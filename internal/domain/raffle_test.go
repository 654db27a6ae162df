package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTicketRangeNumbers(t *testing.T) {
	t.Parallel()

	block := TicketRange{First: 5, Last: 10}
	if block.Count() != 6 {
		t.Fatalf("count = %d, want 6", block.Count())
	}
	numbers := block.Numbers()
	if len(numbers) != 6 || numbers[0] != 5 || numbers[5] != 10 {
		t.Fatalf("unexpected expansion: %v", numbers)
	}
}

func TestRaffleAcceptsEntries(t *testing.T) {
	t.Parallel()

	active := Raffle{Status: RaffleStatusActive}
	draft := Raffle{Status: RaffleStatusDraft}
	closed := Raffle{Status: RaffleStatusClosed}

	if !active.AcceptsEntries(false) {
		t.Fatal("active raffle must accept entries")
	}
	if draft.AcceptsEntries(false) {
		t.Fatal("draft raffle must reject entries without the presale flag")
	}
	if !draft.AcceptsEntries(true) {
		t.Fatal("draft raffle must accept entries with the presale flag")
	}
	if closed.AcceptsEntries(true) {
		t.Fatal("closed raffle must never accept entries")
	}
}

func TestRaffleStats(t *testing.T) {
	t.Parallel()

	raffle := Raffle{
		RaffleID:     "r1",
		TicketPrice:  decimal.RequireFromString("5.00"),
		TotalTickets: 10,
		TicketsSold:  10,
	}
	stats := raffle.Stats()
	if !stats.Revenue.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("revenue = %s, want 50.00", stats.Revenue)
	}
	if !stats.Progress.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("progress = %s, want 100", stats.Progress)
	}

	raffle.TicketsSold = 3
	stats = raffle.Stats()
	if !stats.Progress.Equal(decimal.RequireFromString("30")) {
		t.Fatalf("progress = %s, want 30", stats.Progress)
	}
}

func TestValidateCreateRaffleInput(t *testing.T) {
	t.Parallel()

	price := decimal.RequireFromString("2.50")
	if err := ValidateCreateRaffleInput("c1", "Spring Raffle", price, 100); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if err := ValidateCreateRaffleInput("c1", "Spring Raffle", decimal.RequireFromString("-1"), 100); err != ErrValidation {
		t.Fatalf("negative price: got %v, want ErrValidation", err)
	}
	if err := ValidateCreateRaffleInput("c1", "Spring Raffle", price, 0); err != ErrValidation {
		t.Fatalf("zero capacity: got %v, want ErrValidation", err)
	}
	if err := ValidateCreateRaffleInput("c1", "  ", price, 100); err != ErrValidation {
		t.Fatalf("blank title: got %v, want ErrValidation", err)
	}
}
