package courses

import (
	"encoding/json"
	"errors"
	"net/http"

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

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list courses"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CourseID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_id is required"})
		return
	}

	resp, err := h.service.Enroll(userID, req.CourseID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to enroll"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.IssueCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CourseID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "course_id is required"})
		return
	}

	resp, err := h.service.IssueCertificate(userID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourseIncomplete):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Course is not complete"})
		case errors.Is(err, ErrCertificateExists):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Certificate already issued"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to issue certificate"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	certs, err := h.service.ListCertificates(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list certificates"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"certificates": certs})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
