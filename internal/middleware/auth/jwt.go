package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apperrors "github.com/sandboxpay/gateway/pkg/errors"
	"go.uber.org/zap"
)

// AuthMerchant is the authenticated merchant identity derived from a JWT.
type AuthMerchant struct {
	MerchantID uuid.UUID
	Email      string
}

type contextKey string

const merchantContextKey contextKey = "authenticated_merchant"

// JWTConfig holds the configuration for the merchant JWT middleware.
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string
}

// JWTMiddleware validates HS256 merchant tokens. The sub claim must be the
// merchant's UUID. Public checkout routes are listed in SkipPaths.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return apperrors.WriteHTTP(c, apperrors.NewAppError(
					apperrors.CodeUnauthenticated, "Authorization header required", nil))
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("invalid authorization header format",
					zap.String("path", path))
				return apperrors.WriteHTTP(c, apperrors.NewAppError(
					apperrors.CodeUnauthenticated, "Expected: Bearer <token>", nil))
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("jwt validation failed",
					zap.Error(err),
					zap.String("path", path))
				return apperrors.WriteHTTP(c, apperrors.NewAppError(
					apperrors.CodeUnauthenticated, "Invalid or expired token", nil))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				config.Logger.Warn("invalid jwt claims", zap.String("path", path))
				return apperrors.WriteHTTP(c, apperrors.NewAppError(
					apperrors.CodeUnauthenticated, "Invalid token claims", nil))
			}

			sub, _ := claims["sub"].(string)
			merchantID, err := uuid.Parse(sub)
			if err != nil {
				config.Logger.Warn("jwt sub is not a merchant id",
					zap.String("sub", sub),
					zap.String("path", path))
				return apperrors.WriteHTTP(c, apperrors.NewAppError(
					apperrors.CodeUnauthenticated, "Invalid token claims", nil))
			}

			email, _ := claims["email"].(string)
			merchant := &AuthMerchant{
				MerchantID: merchantID,
				Email:      email,
			}

			ctx := context.WithValue(c.Request().Context(), merchantContextKey, merchant)
			c.SetRequest(c.Request().WithContext(ctx))

			config.Logger.Debug("merchant authenticated",
				zap.String("merchant_id", merchantID.String()),
				zap.String("path", path))

			return next(c)
		}
	}
}

// MerchantFromContext extracts the authenticated merchant from the request.
func MerchantFromContext(c echo.Context) (*AuthMerchant, error) {
	merchant, ok := c.Request().Context().Value(merchantContextKey).(*AuthMerchant)
	if !ok || merchant == nil {
		return nil, fmt.Errorf("no authenticated merchant in context")
	}
	return merchant, nil
}

// RequireMerchant returns the merchant or writes the 401 response itself.
func RequireMerchant(c echo.Context) (*AuthMerchant, error) {
	merchant, err := MerchantFromContext(c)
	if err != nil {
		// The response is already committed; echo will not render the
		// returned error a second time.
		_ = apperrors.WriteHTTP(c, apperrors.NewAppError(
			apperrors.CodeUnauthenticated, "Authentication required", nil))
		return nil, err
	}
	return merchant, nil
}
