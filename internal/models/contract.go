package models

import "time"

// Docstatus values mirror the three-stage submission model: a contract is
// editable in draft, frozen on submit, terminal once cancelled.
const (
	DocstatusDraft     = 0
	DocstatusSubmitted = 1
	DocstatusCancelled = 2
)

// Contract status values. Status is always derived, never set by callers.
const (
	StatusUnsigned = "Unsigned"
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Fulfilment status values.
const (
	FulfilmentNA        = "N/A"
	FulfilmentNone      = "Unfulfilled"
	FulfilmentPartial   = "Partially Fulfilled"
	FulfilmentFulfilled = "Fulfilled"
	FulfilmentLapsed    = "Lapsed"
)

// Party types a contract can be drawn against.
const (
	PartyCustomer = "Customer"
	PartySupplier = "Supplier"
	PartyEmployee = "Employee"
)

// Contract is the agreement record whose lifecycle this service drives.
type Contract struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	PartyType string `gorm:"not null" json:"party_type"`
	PartyName string `gorm:"not null;index" json:"party_name"`

	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil means open-ended

	IsSigned        bool   `json:"is_signed"`
	SignedByCompany string `json:"signed_by_company"`
	Company         string `json:"company"`
	LetterHead      string `json:"letter_head"`

	Status string `gorm:"default:Unsigned;index" json:"status"`

	RequiresFulfilment bool             `json:"requires_fulfilment"`
	FulfilmentDeadline *time.Time       `json:"fulfilment_deadline,omitempty"`
	FulfilmentStatus   string           `gorm:"default:N/A" json:"fulfilment_status"`
	FulfilmentTerms    []FulfilmentTerm `gorm:"foreignKey:ContractID" json:"fulfilment_terms,omitempty"`

	ContractTemplate     string `json:"contract_template"`
	ProjectTemplateID    *uint  `json:"project_template_id,omitempty"`
	ContractTerms        string `gorm:"type:text" json:"contract_terms"`
	ContractTermsDisplay string `gorm:"type:text" json:"contract_terms_display"`

	// Project is set once by the project projection and never overwritten.
	Project string `json:"project"`

	// Source document for order generation (only "Quotation" is handled).
	DocumentType string `json:"document_type"`
	DocumentName string `json:"document_name"`

	Docstatus int `gorm:"default:0;index" json:"docstatus"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FulfilmentTerm is one checklist condition attached to a contract,
// independently markable as fulfilled.
type FulfilmentTerm struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ContractID  uint   `gorm:"not null;index" json:"contract_id"`
	Idx         int    `gorm:"not null" json:"idx"`
	Requirement string `json:"requirement"`
	Fulfilled   bool   `json:"fulfilled"`
	Notes       string `json:"notes"`
}
