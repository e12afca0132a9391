package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrAuthRequired is returned when no bearer token is available; it is
	// raised before any upstream call is attempted.
	ErrAuthRequired = errors.New("authentication required")

	// ErrCollectionNotFound is returned when a collection name is not registered
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrNoData is returned when the upstream response carried no record
	// array where one was expected (error envelope, wrong shape).
	ErrNoData = errors.New("no data available")

	// ErrNoUsableRecords is returned when the upstream response carried
	// records but none survived normalization.
	ErrNoUsableRecords = errors.New("no usable records found")

	// ErrUpstreamFailed is returned when the platform API call itself failed
	ErrUpstreamFailed = errors.New("upstream request failed")

	// ErrSnapshotMissing is returned when a listing is requested before the
	// collection has been fetched.
	ErrSnapshotMissing = errors.New("collection snapshot missing")
)

// CollectionNotFoundError represents a collection not found error with context
type CollectionNotFoundError struct {
	Collection string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection '%s' not found", e.Collection)
}

func (e *CollectionNotFoundError) Is(target error) bool {
	return target == ErrCollectionNotFound
}

// NewCollectionNotFoundError creates a new CollectionNotFoundError
func NewCollectionNotFoundError(collection string) *CollectionNotFoundError {
	return &CollectionNotFoundError{Collection: collection}
}

// NoDataError represents a malformed or empty upstream payload with context
type NoDataError struct {
	Collection string
	Reason     string
}

func (e *NoDataError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no %s available: %s", e.Collection, e.Reason)
	}
	return fmt.Sprintf("no %s available", e.Collection)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

// NewNoDataError creates a new NoDataError
func NewNoDataError(collection, reason string) *NoDataError {
	return &NoDataError{Collection: collection, Reason: reason}
}

// NoUsableRecordsError is the friendlier empty-result condition: the upstream
// payload was well-formed and non-empty but nothing survived normalization.
type NoUsableRecordsError struct {
	Collection string
	RawCount   int
}

func (e *NoUsableRecordsError) Error() string {
	return fmt.Sprintf("no %s found (%d raw records, none usable)", e.Collection, e.RawCount)
}

func (e *NoUsableRecordsError) Is(target error) bool {
	return target == ErrNoUsableRecords
}

// NewNoUsableRecordsError creates a new NoUsableRecordsError
func NewNoUsableRecordsError(collection string, rawCount int) *NoUsableRecordsError {
	return &NoUsableRecordsError{Collection: collection, RawCount: rawCount}
}

// UpstreamError represents a failed platform API call with context
type UpstreamError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream request to '%s' failed with status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream request to '%s' failed: %s", e.Path, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailed
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(path string, statusCode int, message string) *UpstreamError {
	if message == "" {
		message = "something went wrong"
	}
	return &UpstreamError{Path: path, StatusCode: statusCode, Message: message}
}

// SnapshotMissingError represents a listing request for a collection that has
// not been fetched yet.
type SnapshotMissingError struct {
	Collection string
}

func (e *SnapshotMissingError) Error() string {
	return fmt.Sprintf("collection '%s' has not been fetched yet", e.Collection)
}

func (e *SnapshotMissingError) Is(target error) bool {
	return target == ErrSnapshotMissing
}

// NewSnapshotMissingError creates a new SnapshotMissingError
func NewSnapshotMissingError(collection string) *SnapshotMissingError {
	return &SnapshotMissingError{Collection: collection}
}
