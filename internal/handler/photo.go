package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/festival/api/internal/model"
)

// photoField is the multipart field carrying the upload
const photoField = "photoFromFront"

// Photo handles POST /photo
func (h *UserHandler) Photo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, _, err := r.FormFile(photoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			WriteError(w, model.NewValidationError("Photo exceeds the upload limit",
				model.FieldError{Field: photoField, Message: "too large"}))
		case errors.Is(err, http.ErrMissingFile):
			WriteError(w, model.NewMissingFieldsError([]string{photoField}))
		default:
			WriteError(w, model.NewBadRequestError("invalid multipart body"))
		}
		return
	}
	defer file.Close()

	url, err := h.photos.Upload(r.Context(), file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"url": url})
}
