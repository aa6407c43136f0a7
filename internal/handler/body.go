package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/forgo/festival/api/internal/model"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// checkBody returns the required keys that are absent, null or blank
// strings. Non-string values only need to be present.
func checkBody(body map[string]json.RawMessage, required ...string) []string {
	var missing []string
	for _, key := range required {
		raw, ok := body[key]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			missing = append(missing, key)
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// bindBody reads the JSON body, checks the required keys and decodes it into
// v. On failure the error response is already written and false is returned.
// Unknown keys are ignored; clients send whole form state.
func bindBody(w http.ResponseWriter, r *http.Request, v interface{}, required ...string) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, model.NewBadRequestError("request body too large"))
			return false
		}
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return false
	}

	body := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			WriteError(w, model.NewBadRequestError("invalid request body"))
			return false
		}
	}

	if missing := checkBody(body, required...); len(missing) > 0 {
		WriteError(w, model.NewMissingFieldsError(missing))
		return false
	}

	if v == nil || len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		WriteError(w, model.NewValidationError("invalid field type: "+typeErrorField(err)))
		return false
	}
	return true
}

func typeErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return "body"
}

// tokenRequest is the body of routes that only identify the caller
type tokenRequest struct {
	Token string `json:"token"`
}

// friendRequest is the body of the friend link routes
type friendRequest struct {
	Token       string `json:"token"`
	FriendToken string `json:"friendToken"`
}

// festivalRequest is the body of the festival toggle routes
type festivalRequest struct {
	Token      string `json:"token"`
	FestivalID string `json:"festivalId"`
}
