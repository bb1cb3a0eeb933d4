// Package httpx defines the JSON response envelope and the error codes
// shared by handlers and middleware.  Every error response has the shape
// {"success": false, "message": ..., "error_code": ...} so clients can
// branch on a stable code instead of parsing messages.
package httpx

import "github.com/labstack/echo/v4"

// Error codes carried in the error_code field.  Token problems map to
// 401, authorization problems to 403, missing users to 404, malformed
// identifiers to 400 and infrastructure failures to 503.  Blacklist-store
// unavailability is deliberately SERVICE_UNAVAILABLE, never a token code.
const (
	CodeTokenAbsent      = "TOKEN_ABSENT"
	CodeTokenInvalid     = "TOKEN_INVALID"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeTokenBlacklisted = "TOKEN_BLACKLISTED"
	CodeBadCredentials   = "INVALID_CREDENTIALS"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeAccountInactive  = "ACCOUNT_INACTIVE"
	CodeAdminRequired    = "ADMIN_ACCESS_REQUIRED"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidID        = "INVALID_IDENTIFIER"
	CodeValidation       = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// Fail writes the error envelope with the given HTTP status.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{
		"success":    false,
		"message":    message,
		"error_code": code,
	})
}

// OK writes a success envelope wrapping the payload under "data".
func OK(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

// Items writes a success envelope for list responses.
func Items(c echo.Context, data any) error {
	return c.JSON(200, echo.Map{
		"success": true,
		"items":   data,
	})
}
