package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-blog-api/internal/model"
	"go-blog-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError collapses internal error detail into one generic message per
// class. Credential and token failures share a single 401 shape so the
// response never reveals which check failed.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid username or password"
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked):
		status = http.StatusUnauthorized
		message = "invalid or expired token"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = "permission denied"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "user not found"
	case errors.Is(err, model.ErrPostNotFound):
		status = http.StatusNotFound
		message = "post not found"
	case errors.Is(err, model.ErrTagNotFound):
		status = http.StatusNotFound
		message = "tag not found"
	case errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusBadRequest
		message = "username already exists"
	case errors.Is(err, model.ErrTagNameTaken):
		status = http.StatusBadRequest
		message = "tag name already exists"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "invalid input"
	default:
		// Log unclassified errors so they are visible in server logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.ErrorResponse{Error: message})
}
