package http

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/sandboxpay/gateway/internal/adapter/handler/http"
	"github.com/sandboxpay/gateway/internal/config"
	domainRepo "github.com/sandboxpay/gateway/internal/domain/repository"
	"github.com/sandboxpay/gateway/internal/idgen"
	"github.com/sandboxpay/gateway/internal/infrastructure/database"
	"github.com/sandboxpay/gateway/internal/middleware/auth"
	"github.com/sandboxpay/gateway/internal/usecase"
	"github.com/sandboxpay/gateway/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	db     *gorm.DB
	repos  *database.Repositories
	cache  domainRepo.CacheRepository
}

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, db *gorm.DB, repos *database.Repositories, cache domainRepo.CacheRepository) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validator: validator.New()}

	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(cfg),
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		db:     db,
		repos:  repos,
		cache:  cache,
	}
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.Service.CheckoutURL == "" {
		return []string{"*"}
	}
	return []string{cfg.Service.CheckoutURL}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	simulator := usecase.NewOutcomeSimulator(s.config.Processing, s.repos.Payment, s.cache, s.logger)
	ids := idgen.NewPaymentIDAllocator(s.repos.Payment, s.logger)

	paymentUsecase := usecase.NewPaymentUsecase(
		s.repos.Payment, s.repos.Order, s.cache, s.repos.Tx, ids, simulator,
		s.logger, s.config.Redis.TTL,
	)
	orderUsecase := usecase.NewOrderUsecase(s.repos.Order, s.logger)

	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, s.logger)
	orderHandler := handlers.NewOrderHandler(orderUsecase, s.logger)
	healthHandler := handlers.NewHealthHandler(s.db)

	s.echo.GET("/health", healthHandler.Health)

	v1 := s.echo.Group("/api/v1")

	// Public checkout routes: no merchant identity required.
	v1.POST("/payments/public", paymentHandler.CreatePaymentPublic)
	v1.GET("/payments/:paymentId/public", paymentHandler.GetPaymentPublic)
	v1.GET("/orders/:orderId/public", orderHandler.GetOrderPublic)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Auth.JWTSecret,
		Logger: s.logger,
	}
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	protected.GET("/payments/dashboard-stats", paymentHandler.GetDashboardStats)
	protected.POST("/payments", paymentHandler.CreatePayment)
	protected.GET("/payments", paymentHandler.ListPayments)
	protected.GET("/payments/:paymentId", paymentHandler.GetPayment)

	protected.POST("/orders", orderHandler.CreateOrder)
	protected.GET("/orders/:orderId", orderHandler.GetOrder)
}
