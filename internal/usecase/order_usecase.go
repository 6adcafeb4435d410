package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sandboxpay/gateway/internal/domain/model"
	"github.com/sandboxpay/gateway/internal/domain/repository"
	"github.com/sandboxpay/gateway/internal/idgen"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"go.uber.org/zap"
)

// CreateOrderInput is the merchant-facing order creation request.
type CreateOrderInput struct {
	Amount   int64
	Currency string
}

// OrderUsecase manages the order records payments are made against.
type OrderUsecase struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewOrderUsecase(orders repository.OrderRepository, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{orders: orders, logger: logger}
}

// CreateOrder creates an order owned by the calling merchant. Currency
// defaults to INR.
func (u *OrderUsecase) CreateOrder(ctx context.Context, merchantID uuid.UUID, in CreateOrderInput) (*model.Order, error) {
	if in.Amount <= 0 {
		return nil, apperrors.NewAppError(apperrors.CodeBadRequest, "Amount must be a positive integer", nil)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "INR"
	}
	if len(currency) != 3 {
		return nil, apperrors.NewAppError(apperrors.CodeBadRequest, "Currency must be a 3-letter code", nil)
	}

	for {
		id, err := idgen.NewOrderID()
		if err != nil {
			return nil, err
		}

		order := &model.Order{
			ID:         id,
			MerchantID: merchantID,
			Amount:     in.Amount,
			Currency:   currency,
			Status:     model.OrderStatusCreated,
		}

		err = u.orders.Create(ctx, order)
		if apperrors.Is(err, repository.ErrDuplicateID) {
			u.logger.Warn("order id taken at insert, regenerating", zap.String("order_id", id))
			continue
		}
		if err != nil {
			return nil, err
		}

		u.logger.Info("order created",
			zap.String("order_id", order.ID),
			zap.Int64("amount", order.Amount),
			zap.String("currency", order.Currency))

		return order, nil
	}
}

// GetOrder returns the merchant's order, hiding other merchants' orders
// behind the same not-found error as absent ones.
func (u *OrderUsecase) GetOrder(ctx context.Context, merchantID uuid.UUID, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || order.MerchantID != merchantID {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound, "Order not found", nil)
	}
	return order, nil
}

// GetOrderPublic returns the checkout projection of an order.
func (u *OrderUsecase) GetOrderPublic(ctx context.Context, id string) (*model.PublicOrder, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound, "Order not found", nil)
	}
	return order.Public(), nil
}
