package database

import (
	"github.com/sandboxpay/gateway/internal/adapter/repository"
	domainRepo "github.com/sandboxpay/gateway/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances.
type Repositories struct {
	Payment domainRepo.PaymentRepository
	Order   domainRepo.OrderRepository
	Tx      domainRepo.TxManager
}

// NewRepositories creates repository instances bound to the database connection.
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Payment: repository.NewPaymentRepository(db, logger),
		Order:   repository.NewOrderRepository(db, logger),
		Tx:      repository.NewTxManager(db),
	}
}
