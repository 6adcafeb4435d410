package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	MethodUPI  PaymentMethod = "upi"
	MethodCard PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// Payment is a single payment attempt against an order. Amount and Currency
// are copied from the order at creation time and never recomputed. Instrument
// columns are populated per method: VPA for upi, CardNetwork/CardLast4 for
// card. ErrorCode and ErrorDescription are set only on a failed resolution.
type Payment struct {
	ID               string        `gorm:"primaryKey;size:25" json:"id"`
	OrderID          string        `gorm:"size:25;not null;index" json:"order_id"`
	MerchantID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Amount           int64         `gorm:"not null" json:"amount"`
	Currency         string        `gorm:"size:3;not null" json:"currency"`
	Method           PaymentMethod `gorm:"size:10;not null" json:"method"`
	Status           PaymentStatus `gorm:"size:20;not null" json:"status"`
	VPA              *string       `gorm:"column:vpa;size:255" json:"vpa"`
	CardNetwork      *string       `gorm:"size:20" json:"card_network"`
	CardLast4        *string       `gorm:"size:4" json:"card_last4"`
	ErrorCode        *string       `gorm:"size:50" json:"error_code"`
	ErrorDescription *string       `json:"error_description"`
	CreatedAt        time.Time     `gorm:"default:now();index" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"default:now()" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// PublicPayment is the projection served to unauthenticated status polling.
// It never carries the owning merchant or error internals.
type PublicPayment struct {
	ID          string        `json:"id"`
	OrderID     string        `json:"order_id"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	VPA         *string       `json:"vpa"`
	CardNetwork *string       `json:"card_network"`
	CardLast4   *string       `json:"card_last4"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Public returns the polling-safe projection of the payment.
func (p *Payment) Public() *PublicPayment {
	return &PublicPayment{
		ID:          p.ID,
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Method:      p.Method,
		Status:      p.Status,
		VPA:         p.VPA,
		CardNetwork: p.CardNetwork,
		CardLast4:   p.CardLast4,
		CreatedAt:   p.CreatedAt,
	}
}

// DashboardStats is the merchant-facing aggregate over all of their payments.
type DashboardStats struct {
	TotalTransactions int64   `json:"total_transactions"`
	TotalAmount       int64   `json:"total_amount"`
	SuccessRate       float64 `json:"success_rate"`
}
