package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ledgerline/contracts/internal/models"
	"github.com/ledgerline/contracts/internal/validation"
)

// ContractService drives the contract lifecycle: validation, status
// derivation, the Draft/Submitted/Cancelled state machine and the one-shot
// projections (event, project, sales order) hanging off its transitions.
//
// Clock and identity are injected so every derivation is deterministic
// under test.
type ContractService struct {
	DB *gorm.DB

	// Now supplies "today" for status/fulfilment derivation and the sweep.
	Now func() time.Time

	// CurrentUser resolves the submitting actor from the request context.
	CurrentUser func(ctx context.Context) string

	// DefaultCompany is stamped when the actor has no employee record.
	DefaultCompany string
}

func NewContractService(db *gorm.DB, defaultCompany string) *ContractService {
	return &ContractService{
		DB:             db,
		Now:            time.Now,
		CurrentUser:    func(ctx context.Context) string { return "" },
		DefaultCompany: defaultCompany,
	}
}

// Create validates and persists a new contract in draft.
func (s *ContractService) Create(ctx context.Context, c *models.Contract) error {
	c.ID = 0
	c.Docstatus = models.DocstatusDraft
	c.Project = ""
	c.SignedByCompany = ""
	if err := s.Validate(c, s.Now()); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(c).Error
}

// Get loads a contract with its fulfilment terms in checklist order.
func (s *ContractService) Get(ctx context.Context, name string) (*models.Contract, error) {
	var c models.Contract
	err := s.DB.WithContext(ctx).
		Preload("FulfilmentTerms", func(db *gorm.DB) *gorm.DB { return db.Order("idx asc") }).
		Where("name = ?", name).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	PartyName string
	PartyType string
	Status    string
	Docstatus *int
}

func (s *ContractService) List(ctx context.Context, f ListFilter) ([]models.Contract, error) {
	q := s.DB.WithContext(ctx).Model(&models.Contract{})
	if f.PartyName != "" {
		q = q.Where("party_name = ?", f.PartyName)
	}
	if f.PartyType != "" {
		q = q.Where("party_type = ?", f.PartyType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Docstatus != nil {
		q = q.Where("docstatus = ?", *f.Docstatus)
	}
	var out []models.Contract
	err := q.Order("name asc").Find(&out).Error
	return out, err
}

// Validate is the gate run before every persist. The date check runs first
// so derived fields never reflect an invalid range.
func (s *ContractService) Validate(c *models.Contract, today time.Time) error {
	v := validation.Violations{}
	validation.Required("party_name", c.PartyName, v)
	validation.OneOf("party_type", c.PartyType, []string{models.PartyCustomer, models.PartySupplier, models.PartyEmployee}, v)
	if c.StartDate.IsZero() {
		v["start_date"] = "required"
	}
	validation.DateOrder("end_date", c.StartDate, c.EndDate, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}

	c.Status = DeriveStatus(c.IsSigned, c.StartDate, c.EndDate, today)
	c.FulfilmentStatus = DeriveFulfilment(c.RequiresFulfilment, c.FulfilmentTerms, c.FulfilmentDeadline, today)
	return s.renderTermsDisplay(c)
}

// Update persists field changes. Drafts go through the full validation
// gate; submitted contracts take the post-submission path that re-derives
// status and runs the one-shot projections; cancelled contracts are frozen.
func (s *ContractService) Update(ctx context.Context, c *models.Contract) error {
	switch c.Docstatus {
	case models.DocstatusDraft:
		if err := s.Validate(c, s.Now()); err != nil {
			return err
		}
		return s.saveWithTerms(ctx, c)
	case models.DocstatusSubmitted:
		return s.updateAfterSubmit(ctx, c)
	default:
		return ErrBadTransition
	}
}

// saveWithTerms writes the contract and replaces its term checklist in one
// transaction.
func (s *ContractService) saveWithTerms(ctx context.Context, c *models.Contract) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", c.ID).Delete(&models.FulfilmentTerm{}).Error; err != nil {
			return err
		}
		for i := range c.FulfilmentTerms {
			c.FulfilmentTerms[i].ID = 0
			c.FulfilmentTerms[i].ContractID = c.ID
		}
		return tx.Save(c).Error
	})
}

// Submit moves Draft -> Submitted: stamps the signing actor, resolves
// company and letter head from the actor's employee record, then projects
// the calendar event.
func (s *ContractService) Submit(ctx context.Context, name string) (*models.Contract, error) {
	c, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.Docstatus != models.DocstatusDraft {
		return nil, ErrBadTransition
	}
	if err := s.Validate(c, s.Now()); err != nil {
		return nil, err
	}

	actor := s.CurrentUser(ctx)
	c.SignedByCompany = actor
	c.Company = s.companyForUser(ctx, actor)
	if c.Company != "" {
		var heads []string
		s.DB.WithContext(ctx).Model(&models.Company{}).
			Where("name = ?", c.Company).
			Limit(1).
			Pluck("default_letter_head", &heads)
		if len(heads) > 0 {
			c.LetterHead = heads[0]
		}
	}
	c.Docstatus = models.DocstatusSubmitted

	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	if err := s.createEventAgainstContract(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("contract %q submitted by %q", c.Name, actor)
	return c, nil
}

// Cancel moves Submitted -> Cancelled and removes the projected event.
func (s *ContractService) Cancel(ctx context.Context, name string) (*models.Contract, error) {
	c, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.Docstatus != models.DocstatusSubmitted {
		return nil, ErrBadTransition
	}
	c.Docstatus = models.DocstatusCancelled
	if err := s.DB.WithContext(ctx).Save(c).Error; err != nil {
		return nil, err
	}
	if err := s.deleteEventAgainstContract(ctx, c.Name); err != nil {
		return nil, err
	}
	log.Printf("contract %q cancelled", c.Name)
	return c, nil
}

// updateAfterSubmit is the post-submission path: re-derive status and
// fulfilment, persist, then attempt the one-shot projections.
func (s *ContractService) updateAfterSubmit(ctx context.Context, c *models.Contract) error {
	v := validation.Violations{}
	validation.DateOrder("end_date", c.StartDate, c.EndDate, v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}

	today := s.Now()
	c.Status = DeriveStatus(c.IsSigned, c.StartDate, c.EndDate, today)
	c.FulfilmentStatus = DeriveFulfilment(c.RequiresFulfilment, c.FulfilmentTerms, c.FulfilmentDeadline, today)
	if err := s.renderTermsDisplay(c); err != nil {
		return err
	}
	if err := s.saveWithTerms(ctx, c); err != nil {
		return err
	}

	if err := s.createProjectAgainstContract(ctx, c); err != nil {
		return err
	}
	return s.createOrderAgainstContract(ctx, c)
}

// MarkFulfilment flips the fulfilled flag on the given term indexes of a
// submitted contract and runs the post-submission update.
func (s *ContractService) MarkFulfilment(ctx context.Context, name string, fulfilledIdx []int) (*models.Contract, error) {
	c, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.Docstatus != models.DocstatusSubmitted {
		return nil, ErrBadTransition
	}
	marked := map[int]bool{}
	for _, i := range fulfilledIdx {
		marked[i] = true
	}
	for i := range c.FulfilmentTerms {
		if marked[c.FulfilmentTerms[i].Idx] {
			c.FulfilmentTerms[i].Fulfilled = true
		}
	}
	if err := s.updateAfterSubmit(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RefreshStatuses is the daily sweep: recompute status for every signed and
// submitted contract and point-update the rows that changed. Contracts are
// not re-validated when a date boundary passes, so the sweep is what flips
// Active to Inactive over time.
func (s *ContractService) RefreshStatuses(ctx context.Context, today time.Time) (int64, error) {
	var rows []models.Contract
	err := s.DB.WithContext(ctx).
		Select("id", "name", "is_signed", "start_date", "end_date", "status").
		Where("is_signed = ? AND docstatus = ?", true, models.DocstatusSubmitted).
		Find(&rows).Error
	if err != nil {
		return 0, err
	}

	var changed int64
	for _, row := range rows {
		status := DeriveStatus(row.IsSigned, row.StartDate, row.EndDate, today)
		if status == row.Status {
			continue
		}
		res := s.DB.WithContext(ctx).Model(&models.Contract{}).
			Where("id = ?", row.ID).
			Update("status", status)
		if res.Error != nil {
			return changed, res.Error
		}
		changed += res.RowsAffected
	}
	return changed, nil
}

// companyForUser resolves the actor's company through the employee table,
// falling back to the configured default.
func (s *ContractService) companyForUser(ctx context.Context, user string) string {
	if user == "" {
		return s.DefaultCompany
	}
	var companies []string
	s.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("user_id = ?", user).
		Limit(1).
		Pluck("company", &companies)
	if len(companies) == 0 || companies[0] == "" {
		return s.DefaultCompany
	}
	return companies[0]
}
