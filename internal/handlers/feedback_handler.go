package handlers

import (
	"encoding/json"
	"net/http"

	"civicBack/internal/services"
)

type FeedbackHandler struct {
	Service *services.FeedbackService
}

// SubmitFeedback records the citizen's one rating for a resolved complaint.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}
	actor := actorFromContext(r)

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	fb, err := h.Service.SubmitFeedback(r.Context(), id, actor.ID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, "SubmitFeedback", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(fb)
}

func (h *FeedbackHandler) GetFeedbackByComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	fb, err := h.Service.GetFeedbackByComplaint(r.Context(), id)
	if err != nil {
		writeServiceError(w, "GetFeedbackByComplaint", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fb)
}
