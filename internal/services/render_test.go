package services

import (
	"strings"
	"testing"
)

func TestRenderTermsDisplay(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, day(2024, 6, 15))

	c := draftContract("Globex - Service Agreement")
	c.ContractTerms = "Between {{.PartyName}} and us, starting {{.StartDate.Format \"2006-01-02\"}}."
	if err := svc.Validate(c, day(2024, 6, 15)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(c.ContractTermsDisplay, "Between Globex and us") {
		t.Fatalf("unexpected rendering: %q", c.ContractTermsDisplay)
	}
	if !strings.Contains(c.ContractTermsDisplay, "starting 2024-01-01") {
		t.Fatalf("expected start date rendered: %q", c.ContractTermsDisplay)
	}
}

func TestRenderTermsEmptyIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, day(2024, 6, 15))

	c := draftContract("Globex - Service Agreement")
	if err := svc.Validate(c, day(2024, 6, 15)); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.ContractTermsDisplay != "" {
		t.Fatalf("expected empty display, got %q", c.ContractTermsDisplay)
	}
}

func TestRenderTermsBadTemplateBlocksSave(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, day(2024, 6, 15))

	c := draftContract("Globex - Service Agreement")
	c.ContractTerms = "broken {{.NoSuchField"
	err := svc.Validate(c, day(2024, 6, 15))
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Violations["contract_terms"] != "invalid_template" {
		t.Fatalf("expected contract_terms violation, got %v", ve.Violations)
	}
}
