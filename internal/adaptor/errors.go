package adaptor

import (
	"errors"
	"net/http"

	"reviewhub/internal/dto/request"
	"reviewhub/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. Anything that is
// not a known error type is treated as an internal failure.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var validationErr *utils.ValidationError
	var authErr *utils.AuthenticationError
	var permErr *utils.PermissionError
	var notFoundErr *utils.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Any("fields", validationErr.Fields),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &authErr):
		log.Warn(operation+" failed - authentication",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, authErr.Message, nil)

	case errors.As(err, &permErr):
		log.Warn(operation+" failed - permission denied",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, permErr.Message)

	case errors.As(err, &notFoundErr):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, notFoundErr.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePagination reads page/per_page query parameters with defaults.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
