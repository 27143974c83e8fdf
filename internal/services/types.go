// Package services holds the content-intelligence orchestration layer:
// category recommendation, auto-tagging, SEO metadata recommendation and SEO
// validation. Services are plain dependency-injected structs constructed once
// at startup.
package services

import "fmt"

// Error codes returned across service boundaries.
const (
	CodeValidationError             = "VALIDATION_ERROR"
	CodeInvalidContent              = "INVALID_CONTENT"
	CodeContentTooShort             = "CONTENT_TOO_SHORT"
	CodeContentTooLong              = "CONTENT_TOO_LONG"
	CodeCategoryRecommendationError = "CATEGORY_RECOMMENDATION_FAILED"
	CodeAIServiceError              = "AI_SERVICE_ERROR"
	CodeNotFound                    = "NOT_FOUND"
	CodePersistenceError            = "PERSISTENCE_ERROR"
)

// ServiceError is the uniform error surface of every public service
// operation. Internal failures are converted, never rethrown past the
// service boundary.
type ServiceError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidationError, Message: fmt.Sprintf(format, args...)}
}

func newNotFoundError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func newPersistenceError(err error) *ServiceError {
	return &ServiceError{Code: CodePersistenceError, Message: err.Error()}
}
