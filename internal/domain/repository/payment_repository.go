package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sandboxpay/gateway/internal/domain/model"
)

// ErrDuplicateID is returned by Create when the store's uniqueness constraint
// rejects the payment id. Callers retry allocation rather than failing.
var ErrDuplicateID = errors.New("duplicate id")

// ErrNotFound is returned by mutations that matched no row.
var ErrNotFound = errors.New("record not found")

// PaymentStats is the raw aggregate a dashboard projection is computed from.
type PaymentStats struct {
	Total         int64
	Successes     int64
	SuccessAmount int64
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error)
	// Resolve moves a processing payment to a terminal status. Payments
	// already terminal are left untouched and reported as ErrNotFound.
	Resolve(ctx context.Context, id string, status model.PaymentStatus, errorCode, errorDescription *string) error
	StatsByMerchant(ctx context.Context, merchantID uuid.UUID) (*PaymentStats, error)
}
