package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeAuthRequired       ErrorCode = "AUTH_REQUIRED"
	ErrorCodeCollectionNotFound ErrorCode = "COLLECTION_NOT_FOUND"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeSnapshotMissing    ErrorCode = "SNAPSHOT_MISSING"

	// Non-fatal data conditions (reported with a 200 notice on refresh)
	ErrorCodeNoData      ErrorCode = "NO_DATA"
	ErrorCodeEmptyResult ErrorCode = "EMPTY_RESULT"

	// Server Error Codes (5xx)
	ErrorCodeUpstreamFailed ErrorCode = "UPSTREAM_FAILED"
	ErrorCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	c.JSON(statusCode, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// SendAuthRequiredError sends the authentication-missing condition. It is
// raised before any upstream fetch is attempted.
func SendAuthRequiredError(c *gin.Context) {
	SendError(c, http.StatusUnauthorized, ErrorCodeAuthRequired,
		"Authentication required: no bearer token provided")
}

// SendCollectionNotFoundError sends a standardized collection not found error
func SendCollectionNotFoundError(c *gin.Context, collection string) {
	SendError(c, http.StatusNotFound, ErrorCodeCollectionNotFound,
		"Collection '"+collection+"' not found")
}

// SendSnapshotMissingError tells the caller to refresh before listing.
func SendSnapshotMissingError(c *gin.Context, collection string) {
	SendError(c, http.StatusConflict, ErrorCodeSnapshotMissing,
		"Collection '"+collection+"' has not been fetched yet; refresh it first")
}

// SendUpstreamError sends a standardized upstream failure error
func SendUpstreamError(c *gin.Context, err error) {
	SendError(c, http.StatusBadGateway, ErrorCodeUpstreamFailed, err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}
