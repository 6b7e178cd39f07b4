package models

import "time"

// ProjectTemplate describes the tasks a generated project starts with.
type ProjectTemplate struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TemplateName string         `gorm:"uniqueIndex;not null" json:"template_name"`
	Tasks        []TemplateTask `gorm:"foreignKey:ProjectTemplateID" json:"tasks,omitempty"`
}

// TemplateTask carries day offsets relative to the project creation date.
type TemplateTask struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	ProjectTemplateID uint    `gorm:"not null;index" json:"project_template_id"`
	TaskName          string  `gorm:"not null" json:"task_name"`
	DaysToTaskStart   int     `json:"days_to_task_start"`
	DaysToTaskEnd     int     `json:"days_to_task_end"`
	Weight            float64 `json:"weight"`
	Description       string  `gorm:"type:text" json:"description"`
}

// Project is the record generated once per signed contract that carries a
// project template.
type Project struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	ProjectName       string     `gorm:"uniqueIndex;not null" json:"project_name"`
	Customer          string     `json:"customer"`
	ExpectedStartDate *time.Time `json:"expected_start_date,omitempty"`
	ExpectedEndDate   *time.Time `json:"expected_end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is one scheduled unit of work under a generated project.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Subject     string    `gorm:"not null" json:"subject"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Weight      float64   `json:"weight"`
	Description string    `gorm:"type:text" json:"description"`
	ProjectName string    `gorm:"not null;index" json:"project_name"`
}
