package models

import "gorm.io/gorm"

// Customer order statuses
const (
	OrderStatusReceived  = "received"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusCancelled = "cancelled"
)

// Order is a customer order placed from a tenant's public menu page
type Order struct {
	gorm.Model
	TenantID     uint        `gorm:"index;not null" json:"tenant_id"`
	TableNo      string      `json:"table_no"`
	CustomerName string      `json:"customer_name"`
	Note         string      `json:"note"`
	Status       string      `gorm:"default:'received'" json:"status"`
	Total        float64     `json:"total"`
	Currency     string      `json:"currency"`
	Items        []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the product name and price at order time so later
// menu edits do not rewrite order history
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
