package services

import (
	"testing"
	"time"

	"github.com/ledgerline/contracts/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestDeriveStatusUnsigned(t *testing.T) {
	cases := []struct {
		start time.Time
		end   *time.Time
		today time.Time
	}{
		{day(2024, 1, 1), datePtr(day(2024, 12, 31)), day(2024, 6, 15)},
		{day(2024, 1, 1), nil, day(2020, 6, 15)},
		{day(2024, 1, 1), datePtr(day(2024, 12, 31)), day(2030, 1, 1)},
	}
	for _, c := range cases {
		if got := DeriveStatus(false, c.start, c.end, c.today); got != models.StatusUnsigned {
			t.Fatalf("expected Unsigned, got %s", got)
		}
	}
}

func TestDeriveStatusOpenEnded(t *testing.T) {
	// No end date means always active, even before the start date.
	if got := DeriveStatus(true, day(2024, 6, 1), nil, day(2020, 1, 1)); got != models.StatusActive {
		t.Fatalf("expected Active for open-ended contract, got %s", got)
	}
	if got := DeriveStatus(true, day(2024, 6, 1), nil, day(2030, 1, 1)); got != models.StatusActive {
		t.Fatalf("expected Active for open-ended contract, got %s", got)
	}
}

func TestDeriveStatusWindow(t *testing.T) {
	start := day(2024, 1, 1)
	end := datePtr(day(2024, 12, 31))
	cases := []struct {
		today time.Time
		want  string
	}{
		{day(2024, 6, 15), models.StatusActive},
		{day(2024, 1, 1), models.StatusActive},   // start day inclusive
		{day(2024, 12, 31), models.StatusActive}, // end day inclusive
		{day(2023, 12, 31), models.StatusInactive},
		{day(2025, 1, 1), models.StatusInactive},
	}
	for _, c := range cases {
		if got := DeriveStatus(true, start, end, c.today); got != c.want {
			t.Fatalf("today=%s: expected %s, got %s", c.today.Format("2006-01-02"), c.want, got)
		}
	}
}

func TestDeriveFulfilmentNotRequired(t *testing.T) {
	terms := []models.FulfilmentTerm{{Fulfilled: true}, {Fulfilled: true}}
	deadline := datePtr(day(2020, 1, 1)) // long past
	if got := DeriveFulfilment(false, terms, deadline, day(2024, 6, 1)); got != models.FulfilmentNA {
		t.Fatalf("expected N/A when fulfilment not required, got %s", got)
	}
}

func TestDeriveFulfilmentZeroTerms(t *testing.T) {
	// A contract requiring fulfilment with no terms never reaches Fulfilled.
	if got := DeriveFulfilment(true, nil, nil, day(2024, 6, 1)); got != models.FulfilmentNone {
		t.Fatalf("expected Unfulfilled for empty checklist, got %s", got)
	}
}

func TestDeriveFulfilmentProgress(t *testing.T) {
	today := day(2024, 6, 1)
	terms := []models.FulfilmentTerm{{Fulfilled: true}, {}, {}}
	if got := DeriveFulfilment(true, terms, nil, today); got != models.FulfilmentPartial {
		t.Fatalf("1/3 terms: expected Partially Fulfilled, got %s", got)
	}
	all := []models.FulfilmentTerm{{Fulfilled: true}, {Fulfilled: true}, {Fulfilled: true}}
	if got := DeriveFulfilment(true, all, nil, today); got != models.FulfilmentFulfilled {
		t.Fatalf("3/3 terms: expected Fulfilled, got %s", got)
	}
	none := []models.FulfilmentTerm{{}, {}, {}}
	if got := DeriveFulfilment(true, none, nil, today); got != models.FulfilmentNone {
		t.Fatalf("0/3 terms: expected Unfulfilled, got %s", got)
	}
}

func TestDeriveFulfilmentLapsed(t *testing.T) {
	deadline := datePtr(day(2024, 5, 1))
	terms := []models.FulfilmentTerm{{Fulfilled: true}, {}}
	if got := DeriveFulfilment(true, terms, deadline, day(2024, 6, 1)); got != models.FulfilmentLapsed {
		t.Fatalf("expected Lapsed past deadline, got %s", got)
	}
	// A fulfilled contract is immune to the deadline override.
	all := []models.FulfilmentTerm{{Fulfilled: true}, {Fulfilled: true}}
	if got := DeriveFulfilment(true, all, deadline, day(2024, 6, 1)); got != models.FulfilmentFulfilled {
		t.Fatalf("expected Fulfilled to survive deadline, got %s", got)
	}
	// On the deadline day itself nothing lapses yet.
	if got := DeriveFulfilment(true, terms, deadline, day(2024, 5, 1)); got != models.FulfilmentPartial {
		t.Fatalf("expected Partially Fulfilled on deadline day, got %s", got)
	}
}
