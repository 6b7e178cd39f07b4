package models

import "time"

// Quotation is the source document an order projection converts from.
type Quotation struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"uniqueIndex;not null" json:"name"`
	PartyName string          `json:"party_name"`
	Items     []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type QuotationItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	QuotationID uint    `gorm:"not null;index" json:"quotation_id"`
	ItemCode    string  `gorm:"not null" json:"item_code"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
}

// SalesOrder is the order generated once per signed contract sourced from a
// quotation. Contract holds the owning contract name; at most one order
// references a given contract.
type SalesOrder struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"uniqueIndex;not null" json:"name"`
	Customer     string           `json:"customer"`
	Contract     string           `gorm:"index" json:"contract"`
	Project      string           `json:"project"`
	DeliveryDate *time.Time       `json:"delivery_date,omitempty"`
	Docstatus    int              `gorm:"default:0" json:"docstatus"`
	Items        []SalesOrderItem `gorm:"foreignKey:SalesOrderID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SalesOrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	SalesOrderID uint    `gorm:"not null;index" json:"sales_order_id"`
	ItemCode     string  `gorm:"not null" json:"item_code"`
	Qty          float64 `json:"qty"`
	Rate         float64 `json:"rate"`
}
