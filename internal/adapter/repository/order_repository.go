package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandboxpay/gateway/internal/domain/model"
	domainRepo "github.com/sandboxpay/gateway/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOrderRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := r.conn(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainRepo.ErrDuplicateID
		}
		r.logger.Error("failed to create order",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.conn(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get order by id",
			zap.String("order_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
