package forum

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

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

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "title and body are required"})
		return
	}

	resp, err := h.service.CreatePost(userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create post"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid post ID"})
		return
	}

	var req models.CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "body is required"})
		return
	}

	reply, err := h.service.CreateReply(postID, userID, req.Body)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Post not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create reply"})
		return
	}

	writeJSON(w, http.StatusCreated, reply)
}

func (h *Handler) AcceptAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid post ID"})
		return
	}

	var req models.AcceptAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.ReplyID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "reply_id is required"})
		return
	}

	resp, err := h.service.AcceptAnswer(postID, req.ReplyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrReplyNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotPostAuthor):
			writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAnswerExists):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to accept answer"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
