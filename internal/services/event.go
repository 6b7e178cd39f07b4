package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ledgerline/contracts/internal/models"
)

// createEventAgainstContract projects a submitted contract onto the
// calendar. Only contracts with an end date get an event; the projection is
// keyed by contract name and skips when one already exists.
func (s *ContractService) createEventAgainstContract(ctx context.Context, c *models.Contract) error {
	if c.EndDate == nil {
		return nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Event{}).
		Where("subject = ?", c.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	event := models.Event{
		Subject:     c.Name,
		EndsOn:      *c.EndDate,
		Description: c.ContractTermsDisplay,
		AllDay:      true,
		Participants: []models.EventParticipant{
			{RefType: c.PartyType, RefName: c.PartyName},
		},
	}

	// The employee who signed for the company joins the event when one
	// resolves for the stamped user.
	if c.SignedByCompany != "" {
		var emp models.Employee
		err := s.DB.WithContext(ctx).Where("user_id = ?", c.SignedByCompany).First(&emp).Error
		if err == nil {
			event.Participants = append(event.Participants, models.EventParticipant{
				RefType: models.PartyEmployee,
				RefName: emp.Name,
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return s.DB.WithContext(ctx).Create(&event).Error
}

// deleteEventAgainstContract removes the calendar event keyed by the
// contract name, if one exists.
func (s *ContractService) deleteEventAgainstContract(ctx context.Context, name string) error {
	var event models.Event
	err := s.DB.WithContext(ctx).Where("subject = ?", name).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
}
