package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/festival/api/internal/model"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteResult writes {"result": true, ...fields} with status 200
func WriteResult(w http.ResponseWriter, fields map[string]interface{}) {
	body := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["result"] = true
	WriteJSON(w, http.StatusOK, body)
}

// WriteError writes the {"result": false, "error": ...} envelope
func WriteError(w http.ResponseWriter, err *model.APIError) {
	WriteJSON(w, err.Status, err)
}
