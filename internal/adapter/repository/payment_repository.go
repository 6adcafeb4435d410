package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandboxpay/gateway/internal/domain/model"
	domainRepo "github.com/sandboxpay/gateway/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.conn(ctx).Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainRepo.ErrDuplicateID
		}
		r.logger.Error("failed to create payment",
			zap.String("payment_id", payment.ID),
			zap.String("order_id", payment.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment
	err := r.conn(ctx).Where("id = ?", id).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get payment by id",
			zap.String("payment_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&model.Payment{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		r.logger.Error("failed to check payment id existence",
			zap.String("payment_id", id),
			zap.Error(err))
		return false, fmt.Errorf("failed to check payment id: %w", err)
	}
	return count > 0, nil
}

func (r *paymentRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.conn(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		r.logger.Error("failed to list payments",
			zap.String("merchant_id", merchantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Resolve(ctx context.Context, id string, status model.PaymentStatus, errorCode, errorDescription *string) error {
	// The processing guard makes terminal statuses monotonic: a payment is
	// resolved at most once, and success/failed never flip afterwards.
	result := r.conn(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentStatusProcessing).
		Updates(map[string]interface{}{
			"status":            status,
			"error_code":        errorCode,
			"error_description": errorDescription,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("failed to resolve payment",
			zap.String("payment_id", id),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return fmt.Errorf("failed to resolve payment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}

	return nil
}

func (r *paymentRepository) StatsByMerchant(ctx context.Context, merchantID uuid.UUID) (*domainRepo.PaymentStats, error) {
	var stats domainRepo.PaymentStats
	err := r.conn(ctx).
		Model(&model.Payment{}).
		Select(
			"COUNT(*) AS total, "+
				"COUNT(*) FILTER (WHERE status = ?) AS successes, "+
				"COALESCE(SUM(amount) FILTER (WHERE status = ?), 0) AS success_amount",
			model.PaymentStatusSuccess, model.PaymentStatusSuccess,
		).
		Where("merchant_id = ?", merchantID).
		Scan(&stats).Error
	if err != nil {
		r.logger.Error("failed to aggregate payment stats",
			zap.String("merchant_id", merchantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate payment stats: %w", err)
	}
	return &stats, nil
}

func (r *paymentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
