package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stable error codes returned to API clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidState = "INVALID_STATE"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
)

// ValidationIssue describes one rejected field in a request.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// StandardResponse represents a standard API response
type StandardResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response. Details carries per-field
// validation issues and is omitted otherwise.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, StandardResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseWithCode sends an error response with custom status code
func ErrorResponseWithCode(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// ValidationError sends a 400 with the per-field issue list
func ValidationError(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Code:    CodeValidation,
		Details: details,
	})
}

// BadRequestError sends a 400 error response
func BadRequestError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusBadRequest, CodeValidation, message)
}

// NotFoundError sends a 404 error response
func NotFoundError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusNotFound, CodeNotFound, message)
}

// InvalidStateError sends a 409 error response
func InvalidStateError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusConflict, CodeInvalidState, message)
}

// InternalServerError sends a 500 error response. The message must stay
// generic; details belong in the server log only.
func InternalServerError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusInternalServerError, CodeInternal, message)
}

// UnauthorizedError sends a 401 error response
func UnauthorizedError(c *gin.Context, message string) {
	ErrorResponseWithCode(c, http.StatusUnauthorized, CodeUnauthorized, message)
}
