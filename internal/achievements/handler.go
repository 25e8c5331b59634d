package achievements

import (
	"encoding/json"
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

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.ListCatalog()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list achievements"})
		return
	}
	if catalog == nil {
		catalog = []models.Achievement{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": catalog})
}

func (h *Handler) ListUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.ListUserAchievements(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list earned achievements"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Evaluate re-runs the evaluator/awarder pipeline for the caller. Normally
// the pipeline fires from collaborator actions; this endpoint lets the UI
// reconcile after the fact.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	unlocked, err := h.service.EvaluateAndAward(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Evaluation failed"})
		return
	}
	if unlocked == nil {
		unlocked = []models.AchievementUnlocked{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements_unlocked": unlocked})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
