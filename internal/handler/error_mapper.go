package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
	"github.com/forgo/festival/api/internal/service"
)

// MapServiceError converts a service error to the response envelope.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrMissingFields):
		var mf *service.MissingFieldsError
		if errors.As(err, &mf) {
			return model.NewMissingFieldsError(mf.Fields)
		}
		return model.NewMissingFieldsError(nil)
	case errors.Is(err, service.ErrTokensRequired):
		return model.NewValidationError("Tokens are required")
	case errors.Is(err, service.ErrCannotFriendSelf):
		return model.NewValidationError("Cannot add yourself as a friend",
			model.FieldError{Field: "friendToken", Message: "must differ from token"})
	case errors.Is(err, service.ErrInvalidBirthdate):
		return model.NewValidationError("Invalid birthdate",
			model.FieldError{Field: "birthdate", Message: "expected YYYY-MM-DD or an ISO 8601 timestamp"})
	case errors.Is(err, service.ErrInvalidImage):
		return model.NewValidationError("Uploaded file is not a supported image",
			model.FieldError{Field: "photoFromFront", Message: "jpeg, png, gif, bmp or tiff expected"})

	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewLoginFailedError("User not found or wrong password")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User not found")
	case errors.Is(err, service.ErrFriendNotFound):
		return model.NewNotFoundError("Friend not found")
	case errors.Is(err, service.ErrFestivalNotFound):
		return model.NewNotFoundError("Festival not found")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrUserAlreadyExists):
		return model.NewAlreadyExistsError("User already exists")
	case errors.Is(err, service.ErrEmailTaken):
		return model.NewAlreadyExistsError("Email already in use")
	case errors.Is(err, service.ErrAlreadyFriends):
		return model.NewConflictError("Already friends")

	// ===== Upstream Errors =====
	case errors.Is(err, service.ErrImageHost):
		return model.NewUpstreamError("Image upload failed")
	case errors.Is(err, service.ErrStagingFailed):
		slog.Error("photo staging failed", slog.String("error", err.Error()))
		return model.NewInternalError(err.Error())
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery),
		errors.Is(err, database.ErrDuplicate):
		slog.Error("database error", slog.String("error", err.Error()))
		return model.NewDatabaseError()
	}

	slog.Error("unhandled service error", slog.String("error", err.Error()))
	return model.NewInternalError("")
}

// writeServiceError maps and writes err
func writeServiceError(w http.ResponseWriter, err error) {
	WriteError(w, MapServiceError(err))
}
