package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes carried in ErrorResponse.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeClient       = "CLIENT_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeRoomNotFound = "ROOM_NOT_FOUND"
	CodeRoomOccupied = "ROOM_OCCUPIED"
	CodeConflict     = "CONFLICT"
	CodeServer       = "SERVER_ERROR"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeRateLimited  = "RATE_LIMITED"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// MessageResponse is the body of successful deletes.
type MessageResponse struct {
	Message string `json:"message"`
	Count   *int64 `json:"count,omitempty"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	var details map[string]string
	if field != "" {
		details = map[string]string{field: message}
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse(CodeValidation, message, details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, code, message string) error {
	if code == "" {
		code = CodeClient
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse(code, message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse(CodeServer, message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse(CodeNotFound, message, nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse(CodeConflict, message, nil))
}

// SendUnavailableError reports a dependency that is not configured or down.
func SendUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse(CodeUnavailable, message, nil))
}
