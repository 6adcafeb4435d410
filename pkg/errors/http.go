package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var codeToStatus = map[string]int{
	CodeInternal:        http.StatusInternalServerError,
	CodeNotFound:        http.StatusNotFound,
	CodeBadRequest:      http.StatusBadRequest,
	CodeUnauthenticated: http.StatusUnauthorized,
	CodeInvalidVPA:      http.StatusBadRequest,
	CodeInvalidCard:     http.StatusBadRequest,
	CodeExpiredCard:     http.StatusBadRequest,
}

// ToHTTPStatus maps an error code to its HTTP status. Unknown codes map to 500.
func ToHTTPStatus(code string) int {
	if status, ok := codeToStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorBody is the wire shape of every rejected request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// WriteHTTP renders err as a structured JSON error response. Internal causes
// are never leaked; anything that is not an AppError becomes a generic 500.
func WriteHTTP(c echo.Context, err error) error {
	var appErr *AppError
	if As(err, &appErr) {
		return c.JSON(ToHTTPStatus(appErr.Code()), ErrorBody{
			Error: ErrorDetail{
				Code:        appErr.Code(),
				Description: appErr.Description(),
			},
		})
	}

	return c.JSON(http.StatusInternalServerError, ErrorBody{
		Error: ErrorDetail{
			Code:        CodeInternal,
			Description: "Internal Server Error",
		},
	})
}
