package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sandboxpay/gateway/internal/middleware/auth"
	"github.com/sandboxpay/gateway/internal/usecase"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"go.uber.org/zap"
)

type OrderHandler struct {
	usecase *usecase.OrderUsecase
	logger  *zap.Logger
}

func NewOrderHandler(usecase *usecase.OrderUsecase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.WriteHTTP(c, apperrors.NewAppError(
			apperrors.CodeBadRequest, "Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.WriteHTTP(c, apperrors.NewAppError(
			apperrors.CodeBadRequest, "amount is required", err))
	}

	order, err := h.usecase.CreateOrder(c.Request().Context(), merchant.MerchantID, usecase.CreateOrderInput{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		apperrors.LogError(h.logger, err, "order creation rejected",
			zap.String("merchant_id", merchant.MerchantID.String()))
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	order, err := h.usecase.GetOrder(c.Request().Context(), merchant.MerchantID, c.Param("orderId"))
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrderPublic(c echo.Context) error {
	order, err := h.usecase.GetOrderPublic(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, order)
}
