package services

import (
	"context"
	"testing"

	"github.com/ledgerline/contracts/internal/models"
)

func TestEventsBetween(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, day(2024, 6, 15))

	inWindow := draftContract("Globex - Service Agreement")
	if err := svc.Create(context.Background(), inWindow); err != nil {
		t.Fatalf("create: %v", err)
	}

	openEnded := draftContract("Globex - Retainer")
	openEnded.EndDate = nil
	if err := svc.Create(context.Background(), openEnded); err != nil {
		t.Fatalf("create: %v", err)
	}

	past := draftContract("Globex - Old Deal")
	pastEnd := day(2023, 3, 31)
	past.StartDate = day(2023, 1, 1)
	past.EndDate = &pastEnd
	if err := svc.Create(context.Background(), past); err != nil {
		t.Fatalf("create: %v", err)
	}

	entries, err := svc.EventsBetween(context.Background(), day(2024, 6, 1), day(2024, 6, 30), ListFilter{})
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 overlapping contracts, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Name == "Globex - Old Deal" {
			t.Fatalf("expired contract leaked into window")
		}
	}

	// Cancelled contracts disappear from the calendar.
	seedDirectory(t, db)
	if _, err := svc.Submit(context.Background(), inWindow.Name); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), inWindow.Name); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	entries, err = svc.EventsBetween(context.Background(), day(2024, 6, 1), day(2024, 6, 30), ListFilter{})
	if err != nil {
		t.Fatalf("events after cancel: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Globex - Retainer" {
		t.Fatalf("expected only the retainer, got %+v", entries)
	}
}

func TestPartyUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, day(2024, 6, 15))

	for _, u := range []models.User{{Email: "alice@globex.com"}, {Email: "bob@globex.com"}, {Email: "carol@initech.com"}} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	contacts := []models.Contact{
		{Name: "Alice", User: "alice@globex.com", Links: []models.ContactLink{{LinkDoctype: models.PartyCustomer, LinkName: "Globex"}}},
		{Name: "Bob", User: "bob@globex.com", Links: []models.ContactLink{{LinkDoctype: models.PartyCustomer, LinkName: "Globex"}}},
		{Name: "Carol", User: "carol@initech.com", Links: []models.ContactLink{{LinkDoctype: models.PartyCustomer, LinkName: "Initech"}}},
	}
	for i := range contacts {
		if err := db.Create(&contacts[i]).Error; err != nil {
			t.Fatalf("seed contact: %v", err)
		}
	}

	users, err := svc.PartyUsers(context.Background(), models.PartyCustomer, "Globex", "")
	if err != nil {
		t.Fatalf("party users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users for Globex, got %v", users)
	}

	users, err = svc.PartyUsers(context.Background(), models.PartyCustomer, "Globex", "alice")
	if err != nil {
		t.Fatalf("party users filtered: %v", err)
	}
	if len(users) != 1 || users[0] != "alice@globex.com" {
		t.Fatalf("expected alice only, got %v", users)
	}

	// Employee parties have no contact links to search.
	users, err = svc.PartyUsers(context.Background(), models.PartyEmployee, "EMP-0001", "")
	if err != nil || users != nil {
		t.Fatalf("expected empty result for employee party, got %v err=%v", users, err)
	}
}
