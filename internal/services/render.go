package services

import (
	"bytes"
	"text/template"

	"github.com/ledgerline/contracts/internal/models"
	"github.com/ledgerline/contracts/internal/validation"
)

// renderTermsDisplay renders the contract terms template against the
// contract's own fields. A template that fails to parse or execute blocks
// the save as a validation error.
func (s *ContractService) renderTermsDisplay(c *models.Contract) error {
	if c.ContractTerms == "" {
		c.ContractTermsDisplay = ""
		return nil
	}

	tmpl, err := template.New("contract_terms").Parse(c.ContractTerms)
	if err != nil {
		return &ValidationError{Violations: validation.Violations{"contract_terms": "invalid_template"}}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, c); err != nil {
		return &ValidationError{Violations: validation.Violations{"contract_terms": "invalid_template"}}
	}
	c.ContractTermsDisplay = buf.String()
	return nil
}
