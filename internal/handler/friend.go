package handler

import (
	"net/http"
)

// GetAllUsers handles POST /getAllUsers
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bindBody(w, r, &req, "token") {
		return
	}

	users, err := h.friends.ListUsers(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"friends": orEmpty(users)})
}

// GetAllFriends handles POST /getAllFriends
func (h *UserHandler) GetAllFriends(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bindBody(w, r, &req, "token") {
		return
	}

	friends, err := h.friends.ListFriends(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"friends": orEmpty(friends)})
}

// AddFriend handles PUT /addFriend
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if !bindBody(w, r, &req) {
		return
	}

	if err := h.friends.AddFriend(r.Context(), req.Token, req.FriendToken); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"message": "Friend added"})
}

// DeleteFriend handles PUT /deleteFriend
func (h *UserHandler) DeleteFriend(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if !bindBody(w, r, &req) {
		return
	}

	if err := h.friends.DeleteFriend(r.Context(), req.Token, req.FriendToken); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"message": "Friend removed"})
}
