package errors

// Error codes exposed on the wire. The instrument validation codes mirror
// what the checkout page and merchant dashboard key their messaging on.
const (
	CodeInternal        = "INTERNAL_ERROR"
	CodeNotFound        = "NOT_FOUND_ERROR"
	CodeBadRequest      = "BAD_REQUEST_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInvalidVPA      = "INVALID_VPA"
	CodeInvalidCard     = "INVALID_CARD"
	CodeExpiredCard     = "EXPIRED_CARD"
)
