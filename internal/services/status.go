package services

import (
	"time"

	"github.com/ledgerline/contracts/internal/models"
)

// dateOnly truncates a timestamp to its calendar date so that status
// boundaries are inclusive of the whole start and end days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeriveStatus computes a contract's status from its signing flag and date
// window. today is injected by the caller; the service never reads the wall
// clock here.
func DeriveStatus(isSigned bool, start time.Time, end *time.Time, today time.Time) string {
	if !isSigned {
		return models.StatusUnsigned
	}
	if end == nil {
		// Open-ended contracts stay active regardless of the start date.
		return models.StatusActive
	}
	now := dateOnly(today)
	if !now.Before(dateOnly(start)) && !now.After(dateOnly(*end)) {
		return models.StatusActive
	}
	return models.StatusInactive
}

// DeriveFulfilment computes the fulfilment status from the term checklist.
// A contract that requires fulfilment but has no terms derives Unfulfilled,
// never Fulfilled. Lapsed overrides any non-Fulfilled value once today has
// passed the deadline.
func DeriveFulfilment(requires bool, terms []models.FulfilmentTerm, deadline *time.Time, today time.Time) string {
	if !requires {
		return models.FulfilmentNA
	}

	progress := 0
	for _, term := range terms {
		if term.Fulfilled {
			progress++
		}
	}

	status := models.FulfilmentNone
	switch {
	case progress == 0:
		status = models.FulfilmentNone
	case progress < len(terms):
		status = models.FulfilmentPartial
	case progress == len(terms):
		status = models.FulfilmentFulfilled
	}

	if status != models.FulfilmentFulfilled && deadline != nil {
		if dateOnly(today).After(dateOnly(*deadline)) {
			status = models.FulfilmentLapsed
		}
	}
	return status
}
