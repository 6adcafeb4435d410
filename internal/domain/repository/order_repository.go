package repository

import (
	"context"

	"github.com/sandboxpay/gateway/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id string) (*model.Order, error)
}
