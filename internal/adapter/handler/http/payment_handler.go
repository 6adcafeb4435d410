package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sandboxpay/gateway/internal/middleware/auth"
	"github.com/sandboxpay/gateway/internal/usecase"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	usecase *usecase.PaymentUsecase
	logger  *zap.Logger
}

func NewPaymentHandler(usecase *usecase.PaymentUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		usecase: usecase,
		logger:  logger,
	}
}

type createPaymentRequest struct {
	OrderID string       `json:"order_id" validate:"required"`
	Method  string       `json:"method" validate:"required"`
	VPA     string       `json:"vpa"`
	Card    *cardRequest `json:"card"`
}

// Card field presence and correctness are judged by the lifecycle engine so
// that the instrument error codes stay exact; no validate tags here.
type cardRequest struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
}

func (r *createPaymentRequest) toInput() usecase.CreatePaymentInput {
	in := usecase.CreatePaymentInput{
		OrderID: r.OrderID,
		Method:  r.Method,
		VPA:     r.VPA,
	}
	if r.Card != nil {
		in.Card = &usecase.CardInput{
			Number:      r.Card.Number,
			ExpiryMonth: r.Card.ExpiryMonth,
			ExpiryYear:  r.Card.ExpiryYear,
		}
	}
	return in
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	req, err := bindCreatePaymentRequest(c)
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	payment, err := h.usecase.CreatePayment(c.Request().Context(), merchant.MerchantID, req.toInput())
	if err != nil {
		apperrors.LogError(h.logger, err, "payment creation rejected",
			zap.String("merchant_id", merchant.MerchantID.String()),
			zap.String("order_id", req.OrderID))
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) CreatePaymentPublic(c echo.Context) error {
	req, err := bindCreatePaymentRequest(c)
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	payment, err := h.usecase.CreatePaymentPublic(c.Request().Context(), req.toInput())
	if err != nil {
		apperrors.LogError(h.logger, err, "public payment creation rejected",
			zap.String("order_id", req.OrderID))
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

func bindCreatePaymentRequest(c echo.Context) (*createPaymentRequest, error) {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return nil, apperrors.NewAppError(apperrors.CodeBadRequest, "order_id and method are required", err)
	}
	return &req, nil
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	payment, err := h.usecase.GetPayment(c.Request().Context(), merchant.MerchantID, c.Param("paymentId"))
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPaymentPublic(c echo.Context) error {
	payment, err := h.usecase.GetPaymentPublic(c.Request().Context(), c.Param("paymentId"))
	if err != nil {
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	payments, err := h.usecase.ListPayments(c.Request().Context(), merchant.MerchantID)
	if err != nil {
		h.logger.Error("failed to list payments",
			zap.String("merchant_id", merchant.MerchantID.String()),
			zap.Error(err))
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetDashboardStats(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return err
	}

	stats, err := h.usecase.DashboardStats(c.Request().Context(), merchant.MerchantID)
	if err != nil {
		h.logger.Error("failed to compute dashboard stats",
			zap.String("merchant_id", merchant.MerchantID.String()),
			zap.Error(err))
		return apperrors.WriteHTTP(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
