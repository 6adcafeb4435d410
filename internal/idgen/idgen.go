// Package idgen produces the public identifiers handed out by the gateway.
package idgen

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 16

	PaymentIDPrefix = "pay_"
	OrderIDPrefix   = "order_"
)

// ExistenceChecker answers whether an id is already taken. The check is
// advisory; the store's uniqueness constraint remains the final arbiter.
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// PaymentIDAllocator allocates collision-checked payment identifiers.
type PaymentIDAllocator struct {
	payments ExistenceChecker
	logger   *zap.Logger
}

func NewPaymentIDAllocator(payments ExistenceChecker, logger *zap.Logger) *PaymentIDAllocator {
	return &PaymentIDAllocator{payments: payments, logger: logger}
}

// Allocate loops until it finds an id the store does not know yet. With 62^16
// candidates the expected iteration count is one; the loop is unbounded on
// purpose. Callers must still treat a duplicate-key error at insert time as a
// signal to allocate again.
func (a *PaymentIDAllocator) Allocate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id, err := NewPaymentID()
		if err != nil {
			return "", err
		}

		exists, err := a.payments.ExistsByID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}

		a.logger.Warn("payment id collision, retrying", zap.String("payment_id", id))
	}
}

// NewPaymentID builds a pay_ id candidate without checking the store.
func NewPaymentID() (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate payment id: %w", err)
	}
	return PaymentIDPrefix + suffix, nil
}

// NewOrderID builds an order_ id candidate without checking the store.
func NewOrderID() (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}
	return OrderIDPrefix + suffix, nil
}
