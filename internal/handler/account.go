package handler

import (
	"net/http"

	"github.com/forgo/festival/api/internal/model"
)

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !bindBody(w, r, &req, "username", "email", "password") {
		return
	}

	token, err := h.accounts.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"token": token})
}

// Signin handles POST /signin
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !bindBody(w, r, &req, "username", "password") {
		return
	}

	result, err := h.accounts.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{
		"username": result.Username,
		"token":    result.Token,
	})
}

// availabilityResponse reports a taken name as result true with a message
type availabilityResponse struct {
	Result bool   `json:"result"`
	Error  string `json:"error,omitempty"`
}

// CheckUser handles POST /checkUser
func (h *UserHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !bindBody(w, r, &req, "username") {
		return
	}

	taken, err := h.accounts.UsernameTaken(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := availabilityResponse{Result: taken}
	if taken {
		resp.Error = "Username already taken"
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CheckMail handles POST /checkMail
func (h *UserHandler) CheckMail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !bindBody(w, r, &req, "email") {
		return
	}

	taken, err := h.accounts.EmailTaken(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := availabilityResponse{Result: taken}
	if taken {
		resp.Error = "Email already in use"
	}
	WriteJSON(w, http.StatusOK, resp)
}
