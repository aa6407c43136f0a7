package handler

import (
	"net/http"
)

// LikeDislikeFestival handles POST /likeDislikeFestival
func (h *UserHandler) LikeDislikeFestival(w http.ResponseWriter, r *http.Request) {
	var req festivalRequest
	if !bindBody(w, r, &req, "token", "festivalId") {
		return
	}

	liked, err := h.festivals.ToggleLiked(r.Context(), req.Token, req.FestivalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{
		"message":        "Update successful",
		"likedFestivals": orEmpty(liked),
	})
}

// FindLiked handles POST /findLiked
func (h *UserHandler) FindLiked(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bindBody(w, r, &req, "token") {
		return
	}

	festivals, err := h.festivals.ListLiked(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"festivalsLiked": orEmpty(festivals)})
}

// MemFest handles POST /MemFest
func (h *UserHandler) MemFest(w http.ResponseWriter, r *http.Request) {
	var req festivalRequest
	if !bindBody(w, r, &req, "token", "festivalId") {
		return
	}

	memories, err := h.festivals.ToggleMemory(r.Context(), req.Token, req.FestivalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{
		"message":           "Update successful",
		"memoriesFestivals": orEmpty(memories),
	})
}

// FindMemories handles POST /findMemories
func (h *UserHandler) FindMemories(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !bindBody(w, r, &req, "token") {
		return
	}

	festivals, err := h.festivals.ListMemories(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteResult(w, map[string]interface{}{"memoriesFestivals": orEmpty(festivals)})
}
