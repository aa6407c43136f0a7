package handler

import (
	"net/http"

	"github.com/forgo/festival/api/internal/model"
)

// Profile handles POST /iprofil
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bindBody(w, r, &req, "token") {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"user": profile})
}

// InfoUser handles POST /infoUser
func (h *UserHandler) InfoUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !bindBody(w, r, &req, "id") {
		return
	}

	profile, err := h.profiles.GetUserByID(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"user": profile})
}

// Update handles PUT /update. Keys sent as null clear the field, omitted
// keys are left unchanged.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ProfileUpdate
	if !bindBody(w, r, &req, "token") {
		return
	}

	profile, err := h.profiles.UpdateProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"user": profile})
}
