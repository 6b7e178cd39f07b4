package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ledgerline/contracts/internal/models"
)

// createOrderAgainstContract is the one-shot order projection: it converts
// the contract's source quotation into a submitted sales order. It fires
// only for signed contracts with no order referencing them yet and a
// concrete quotation reference.
func (s *ContractService) createOrderAgainstContract(ctx context.Context, c *models.Contract) error {
	if !c.IsSigned {
		return nil
	}
	if c.DocumentType != "Quotation" || c.DocumentName == "" {
		return nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.SalesOrder{}).
		Where("contract = ?", c.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var quotation models.Quotation
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("name = ?", c.DocumentName).
		First(&quotation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("quotation %q: %w", c.DocumentName, ErrNotFound)
	}
	if err != nil {
		return err
	}

	order := models.SalesOrder{
		Name:      fmt.Sprintf("SO - %s", c.Name),
		Customer:  quotation.PartyName,
		Contract:  c.Name,
		Project:   c.Project,
		Docstatus: models.DocstatusSubmitted, // saved then finalized in one step
	}
	for _, item := range quotation.Items {
		order.Items = append(order.Items, models.SalesOrderItem{
			ItemCode: item.ItemCode,
			Qty:      item.Qty,
			Rate:     item.Rate,
		})
	}

	// Delivery is promised for the generated project's expected end, when
	// a project is linked.
	if c.Project != "" {
		var project models.Project
		if err := s.DB.WithContext(ctx).Where("project_name = ?", c.Project).First(&project).Error; err == nil {
			order.DeliveryDate = project.ExpectedEndDate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return s.DB.WithContext(ctx).Create(&order).Error
}
