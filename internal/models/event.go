package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the calendar record projected from a submitted contract.
// Subject carries the contract name, which keeps the projection idempotent:
// one event per contract, looked up by subject.
type Event struct {
	ID           string             `gorm:"type:uuid;primaryKey" json:"id"`
	Subject      string             `gorm:"uniqueIndex;not null" json:"subject"`
	EndsOn       time.Time          `gorm:"not null" json:"ends_on"`
	Description  string             `gorm:"type:text" json:"description"`
	AllDay       bool               `json:"all_day"`
	Participants []EventParticipant `gorm:"foreignKey:EventID" json:"participants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// EventParticipant links an event to a referenced record (party, employee).
type EventParticipant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID string `gorm:"type:uuid;not null;index" json:"event_id"`
	RefType string `gorm:"not null" json:"ref_type"`
	RefName string `gorm:"not null" json:"ref_name"`
}
