package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
)

// Order is what a payment attempt is made against. Amount is in minor
// currency units and, together with Currency, is copied verbatim onto every
// payment created for the order.
type Order struct {
	ID         string      `gorm:"primaryKey;size:25" json:"id"`
	MerchantID uuid.UUID   `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Amount     int64       `gorm:"not null" json:"amount"`
	Currency   string      `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Status     OrderStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt  time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"default:now()" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// PublicOrder is the projection served to the unauthenticated checkout page.
type PublicOrder struct {
	ID       string      `json:"id"`
	Amount   int64       `json:"amount"`
	Currency string      `json:"currency"`
	Status   OrderStatus `json:"status"`
}

// Public returns the checkout-safe projection of the order.
func (o *Order) Public() *PublicOrder {
	return &PublicOrder{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Status:   o.Status,
	}
}
