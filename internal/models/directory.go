package models

// Directory records the engine consults when stamping signing metadata and
// resolving event participants or party users. They stand in for the host
// system's HR and contact tables.

// Employee maps a login (UserID email) to an employee code and company.
type Employee struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	UserID  string `gorm:"index" json:"user_id"`
	Company string `json:"company"`
}

// Company carries the default letter head resolved at submission time.
type Company struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"uniqueIndex;not null" json:"name"`
	DefaultLetterHead string `json:"default_letter_head"`
}

// User is a login known to the host.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}

// Contact ties a user to one or more party records through ContactLink rows.
type Contact struct {
	ID    uint          `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	// user is a reserved word in postgres, hence the explicit column.
	User  string        `gorm:"column:user_email" json:"user"`
	Links []ContactLink `gorm:"foreignKey:ContactID" json:"links,omitempty"`
}

// ContactLink is the dynamic-link row behind the party-user search: it says
// "this contact belongs to that Customer/Supplier".
type ContactLink struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ContactID   uint   `gorm:"not null;index" json:"contact_id"`
	LinkDoctype string `gorm:"not null" json:"link_doctype"`
	LinkName    string `gorm:"not null;index" json:"link_name"`
}
