package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sandboxpay/gateway/internal/domain/model"
	"github.com/sandboxpay/gateway/internal/domain/repository"
	"github.com/sandboxpay/gateway/internal/idgen"
	"github.com/sandboxpay/gateway/internal/validation"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CardInput carries raw card details. The number is validated and reduced to
// network plus last4 before anything is stored; the PAN itself never is.
type CardInput struct {
	Number      string
	ExpiryMonth int
	ExpiryYear  int
}

// CreatePaymentInput is the instrument-bearing creation request.
type CreatePaymentInput struct {
	OrderID string
	Method  string
	VPA     string
	Card    *CardInput
}

// Scheduler defers the outcome resolution of a freshly created payment.
type Scheduler interface {
	Schedule(paymentID string, method model.PaymentMethod)
}

// PaymentUsecase is the payment lifecycle engine: it turns a validated
// creation request into a processing payment row inside one transaction and
// hands the id to the scheduler once the transaction has committed.
type PaymentUsecase struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	cache     repository.CacheRepository
	txm       repository.TxManager
	ids       *idgen.PaymentIDAllocator
	scheduler Scheduler
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewPaymentUsecase(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	cache repository.CacheRepository,
	txm repository.TxManager,
	ids *idgen.PaymentIDAllocator,
	scheduler Scheduler,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PaymentUsecase {
	return &PaymentUsecase{
		payments:  payments,
		orders:    orders,
		cache:     cache,
		txm:       txm,
		ids:       ids,
		scheduler: scheduler,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// CreatePayment creates a payment on behalf of an authenticated merchant.
// Orders owned by other merchants are indistinguishable from absent ones.
func (u *PaymentUsecase) CreatePayment(ctx context.Context, merchantID uuid.UUID, in CreatePaymentInput) (*model.Payment, error) {
	return u.create(ctx, &merchantID, in)
}

// CreatePaymentPublic creates a payment with no caller identity; the owning
// merchant is inherited from the order. Anyone holding an order id may pay it.
func (u *PaymentUsecase) CreatePaymentPublic(ctx context.Context, in CreatePaymentInput) (*model.Payment, error) {
	return u.create(ctx, nil, in)
}

func (u *PaymentUsecase) create(ctx context.Context, caller *uuid.UUID, in CreatePaymentInput) (*model.Payment, error) {
	var payment *model.Payment

	err := u.txm.WithinTx(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if order == nil || (caller != nil && order.MerchantID != *caller) {
			return apperrors.NewAppError(apperrors.CodeNotFound, "Order not found", nil)
		}

		instrument, err := validateInstrument(in)
		if err != nil {
			return err
		}

		for {
			id, err := u.ids.Allocate(ctx)
			if err != nil {
				return err
			}

			candidate := &model.Payment{
				ID:          id,
				OrderID:     order.ID,
				MerchantID:  order.MerchantID,
				Amount:      order.Amount,
				Currency:    order.Currency,
				Method:      instrument.method,
				Status:      model.PaymentStatusProcessing,
				VPA:         instrument.vpa,
				CardNetwork: instrument.cardNetwork,
				CardLast4:   instrument.cardLast4,
			}

			// The insert runs in a savepoint so a duplicate id does not
			// poison the surrounding transaction; TOCTOU races on the
			// advisory existence check land here and retry.
			err = u.txm.WithinTx(ctx, func(ctx context.Context) error {
				return u.payments.Create(ctx, candidate)
			})
			if apperrors.Is(err, repository.ErrDuplicateID) {
				u.logger.Warn("payment id taken at insert, reallocating",
					zap.String("payment_id", id))
				continue
			}
			if err != nil {
				return err
			}

			payment = candidate
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	// Scheduled strictly after commit: the caller always observes the
	// processing record before any resolution can happen.
	u.scheduler.Schedule(payment.ID, payment.Method)

	u.logger.Info("payment created",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", payment.OrderID),
		zap.String("method", string(payment.Method)))

	return payment, nil
}

type instrumentFields struct {
	method      model.PaymentMethod
	vpa         *string
	cardNetwork *string
	cardLast4   *string
}

func validateInstrument(in CreatePaymentInput) (instrumentFields, error) {
	switch model.PaymentMethod(in.Method) {
	case model.MethodUPI:
		if in.VPA == "" || !validation.ValidateVPA(in.VPA) {
			return instrumentFields{}, apperrors.NewAppError(apperrors.CodeInvalidVPA, "VPA format invalid", nil)
		}
		vpa := in.VPA
		return instrumentFields{method: model.MethodUPI, vpa: &vpa}, nil

	case model.MethodCard:
		if in.Card == nil {
			return instrumentFields{}, apperrors.NewAppError(apperrors.CodeInvalidCard, "Card details missing", nil)
		}
		if !validation.ValidateLuhn(in.Card.Number) {
			return instrumentFields{}, apperrors.NewAppError(apperrors.CodeInvalidCard, "Card validation failed", nil)
		}
		if !validation.ValidateExpiry(in.Card.ExpiryMonth, in.Card.ExpiryYear) {
			return instrumentFields{}, apperrors.NewAppError(apperrors.CodeExpiredCard, "Card expiry date invalid", nil)
		}
		network := validation.CardNetwork(in.Card.Number)
		last4 := validation.CardLast4(in.Card.Number)
		return instrumentFields{method: model.MethodCard, cardNetwork: &network, cardLast4: &last4}, nil

	default:
		return instrumentFields{}, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid payment method", nil)
	}
}

// GetPayment returns the full record, hiding payments of other merchants
// behind the same not-found error as absent ones.
func (u *PaymentUsecase) GetPayment(ctx context.Context, merchantID uuid.UUID, id string) (*model.Payment, error) {
	payment, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.MerchantID != merchantID {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound, "Payment not found", nil)
	}
	return payment, nil
}

// GetPaymentPublic returns the restricted projection for unauthenticated
// status polling. Possession of the id is the only credential.
func (u *PaymentUsecase) GetPaymentPublic(ctx context.Context, id string) (*model.PublicPayment, error) {
	if u.cache != nil {
		if raw, hit, err := u.cache.Get(ctx, publicPaymentCacheKey(id)); err == nil && hit {
			var cached model.PublicPayment
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	payment, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperrors.NewAppError(apperrors.CodeNotFound, "Payment not found", nil)
	}

	public := payment.Public()

	if u.cache != nil && u.cacheTTL > 0 {
		if raw, err := json.Marshal(public); err == nil {
			// Cache failures only cost the next poll a database read.
			_ = u.cache.Set(ctx, publicPaymentCacheKey(id), raw, u.cacheTTL)
		}
	}

	return public, nil
}

// ListPayments returns all of the merchant's payments, newest first.
func (u *PaymentUsecase) ListPayments(ctx context.Context, merchantID uuid.UUID) ([]*model.Payment, error) {
	return u.payments.ListByMerchant(ctx, merchantID)
}

// DashboardStats aggregates the merchant's payments into transaction count,
// successful amount and a success rate rounded to two decimals.
func (u *PaymentUsecase) DashboardStats(ctx context.Context, merchantID uuid.UUID) (*model.DashboardStats, error) {
	stats, err := u.payments.StatsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	rate := decimal.Zero
	if stats.Total > 0 {
		rate = decimal.NewFromInt(stats.Successes).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(stats.Total)).
			Round(2)
	}

	return &model.DashboardStats{
		TotalTransactions: stats.Total,
		TotalAmount:       stats.SuccessAmount,
		SuccessRate:       rate.InexactFloat64(),
	}, nil
}

func publicPaymentCacheKey(id string) string {
	return "payments:public:" + id
}
