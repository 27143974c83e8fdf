package apihandlers

import (
	"errors"
	"net/http"

	"plume/internal/services"

	"github.com/gin-gonic/gin"
)

// APIError defines the standard error response body.
// Example: { "error": { "code": "VALIDATION_ERROR", "message": "title is required", "retryable": false } }
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string, retryable bool) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg, Retryable: retryable}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg, false)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg, false)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg, false)
}

// ServiceErrorResponse maps a service-layer error onto the HTTP surface,
// preserving its code and retryable flag.
func ServiceErrorResponse(ctx *gin.Context, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		Internal(ctx, err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Code {
	case services.CodeValidationError, services.CodeInvalidContent,
		services.CodeContentTooShort, services.CodeContentTooLong:
		status = http.StatusBadRequest
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeAIServiceError, services.CodeCategoryRecommendationError:
		status = http.StatusBadGateway
	case services.CodePersistenceError:
		status = http.StatusInternalServerError
	}
	JSONError(ctx, status, svcErr.Code, svcErr.Message, svcErr.Retryable)
}
