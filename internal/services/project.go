package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ledgerline/contracts/internal/models"
)

// createProjectAgainstContract is the one-shot project projection. It fires
// only for signed contracts that carry a project template and no project
// link yet. The project, all its tasks, the expected window and the
// contract's link field are written in a single transaction, so a failed
// task creation leaves no half-populated project behind.
func (s *ContractService) createProjectAgainstContract(ctx context.Context, c *models.Contract) error {
	if c.Project != "" || c.ProjectTemplateID == nil || !c.IsSigned {
		return nil
	}

	var tmpl models.ProjectTemplate
	err := s.DB.WithContext(ctx).
		Preload("Tasks").
		First(&tmpl, *c.ProjectTemplateID).Error
	if err != nil {
		return fmt.Errorf("load project template %d: %w", *c.ProjectTemplateID, err)
	}

	baseDate := dateOnly(s.Now())
	projectName, err := s.resolveProjectName(ctx, c.PartyName, tmpl.TemplateName)
	if err != nil {
		return err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project := models.Project{ProjectName: projectName}
		if c.PartyType == models.PartyCustomer {
			project.Customer = c.PartyName
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		var minDate, maxDate time.Time
		for _, task := range tmpl.Tasks {
			start := baseDate.AddDate(0, 0, task.DaysToTaskStart)
			end := baseDate.AddDate(0, 0, task.DaysToTaskEnd)
			t := models.Task{
				Subject:     task.TaskName,
				StartDate:   start,
				EndDate:     end,
				Weight:      task.Weight,
				Description: task.Description,
				ProjectName: projectName,
			}
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
			if minDate.IsZero() || start.Before(minDate) {
				minDate = start
			}
			if maxDate.IsZero() || end.After(maxDate) {
				maxDate = end
			}
		}

		if !minDate.IsZero() {
			if err := tx.Model(&project).Updates(map[string]any{
				"expected_start_date": minDate,
				"expected_end_date":   maxDate,
			}).Error; err != nil {
				return err
			}
		}

		// Point-field update, not a full re-validation pass.
		return tx.Model(&models.Contract{}).
			Where("id = ?", c.ID).
			Update("project", projectName).Error
	})
	if err != nil {
		return err
	}

	c.Project = projectName
	return nil
}

// resolveProjectName builds "<party> - <template>" and appends the count of
// colliding names when one is already taken.
func (s *ContractService) resolveProjectName(ctx context.Context, partyName, templateName string) (string, error) {
	name := fmt.Sprintf("%s - %s", partyName, templateName)

	var exists int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("project_name = ?", name).
		Count(&exists).Error; err != nil {
		return "", err
	}
	if exists == 0 {
		return name, nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Where("project_name LIKE ?", "%"+name+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %d", name, count), nil
}
