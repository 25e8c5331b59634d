package progress

import (
	"encoding/json"
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

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CompleteLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.CourseID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_id is required"})
		return
	}
	if req.Position < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "position must be non-negative"})
		return
	}

	resp, err := h.service.RecordLessonComplete(userID, req.CourseID, req.Position)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record lesson completion"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["courseID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course ID"})
		return
	}

	prog, err := h.service.GetCourseProgress(userID, courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get course progress"})
		return
	}

	writeJSON(w, http.StatusOK, prog)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
