package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sandboxpay/gateway/internal/config"
	"github.com/sandboxpay/gateway/internal/domain/model"
	"github.com/sandboxpay/gateway/internal/domain/repository"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"go.uber.org/zap"
)

const (
	failureCode        = "PAYMENT_FAILED"
	failureDescription = "Payment processing failed"

	resolveTimeout = 10 * time.Second
)

// OutcomeSimulator decides, after a delay, whether a payment succeeds or
// fails, and persists that single resolution. Its behavior is a pure function
// of the injected config: deterministic in test mode, randomized otherwise.
// Exactly one timer is scheduled per payment, so no two resolutions ever race
// on the same record.
type OutcomeSimulator struct {
	cfg      config.ProcessingConfig
	payments repository.PaymentRepository
	cache    repository.CacheRepository
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewOutcomeSimulator(
	cfg config.ProcessingConfig,
	payments repository.PaymentRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *OutcomeSimulator {
	return &OutcomeSimulator{
		cfg:      cfg,
		payments: payments,
		cache:    cache,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Schedule arms the resolution timer for a freshly created payment. It never
// blocks and never fails; the creation response has already been committed.
func (s *OutcomeSimulator) Schedule(paymentID string, method model.PaymentMethod) {
	delay, success := s.decide(method)

	s.logger.Info("payment resolution scheduled",
		zap.String("payment_id", paymentID),
		zap.String("method", string(method)),
		zap.Duration("delay", delay),
		zap.Bool("test_mode", s.cfg.TestMode))

	time.AfterFunc(delay, func() {
		s.resolve(paymentID, success)
	})
}

// decide picks the delay and outcome for one payment.
func (s *OutcomeSimulator) decide(method model.PaymentMethod) (time.Duration, bool) {
	if s.cfg.TestMode {
		return s.cfg.TestDelay, s.cfg.TestSuccess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spread := s.cfg.MaxDelay - s.cfg.MinDelay
	delay := s.cfg.MinDelay
	if spread > 0 {
		delay += time.Duration(s.rng.Int63n(int64(spread) + 1))
	}

	rate := s.cfg.CardSuccessRate
	if method == model.MethodUPI {
		rate = s.cfg.UPISuccessRate
	}

	return delay, s.rng.Float64() < rate
}

// resolve applies the terminal status. A persistence failure is logged and
// not retried; the payment then stays processing until reconciled by hand.
func (s *OutcomeSimulator) resolve(paymentID string, success bool) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	status := model.PaymentStatusSuccess
	var errorCode, errorDescription *string
	if !success {
		status = model.PaymentStatusFailed
		code, description := failureCode, failureDescription
		errorCode, errorDescription = &code, &description
	}

	err := s.payments.Resolve(ctx, paymentID, status, errorCode, errorDescription)
	if err != nil {
		if apperrors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("payment missing or already terminal at resolution",
				zap.String("payment_id", paymentID))
			return
		}
		apperrors.LogError(s.logger, err, "failed to persist payment resolution",
			zap.String("payment_id", paymentID),
			zap.String("status", string(status)))
		return
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, publicPaymentCacheKey(paymentID))
	}

	s.logger.Info("payment resolved",
		zap.String("payment_id", paymentID),
		zap.String("status", string(status)))
}
