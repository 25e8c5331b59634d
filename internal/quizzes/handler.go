package quizzes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/learnhub/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	vars := mux.Vars(r)
	quizID, err := strconv.ParseInt(vars["quizID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	var req models.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Score < 0 || req.Score > 100 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "score must be between 0 and 100"})
		return
	}

	resp, err := h.service.SubmitAttempt(quizID, userID, req.Score)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit attempt"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	attempts, err := h.service.ListAttempts(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
