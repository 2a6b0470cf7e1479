package quiz

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizeUser(w, r, chi.URLParam(r, "user_id"))
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			config.WriteError(w, r, apperr.Validation("limit must be an integer"))
			return
		}
		limit = n
	}

	res, err := h.service.Questions(r.Context(), userID, r.URL.Query().Get("mode"), limit)
	if errors.Is(err, ErrNoNewQuestions) {
		config.JSON(w, http.StatusNotFound, map[string]interface{}{
			"questions": []Question{},
			"message":   "No new questions available for this user.",
		})
		return
	}
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto SubmitDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.StudentID == "" {
		config.WriteError(w, r, apperr.Validation("Missing data fields"))
		return
	}

	userID, ok := h.authorizeUser(w, r, dto.StudentID)
	if !ok {
		return
	}

	res, err := h.service.Submit(r.Context(), userID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizeUser(w, r, chi.URLParam(r, "user_id"))
	if !ok {
		return
	}

	res, err := h.service.Results(r.Context(), userID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorizeUser(w, r, chi.URLParam(r, "user_id"))
	if !ok {
		return
	}

	res, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

// authorizeUser only lets users read and write their own quiz data.
func (h *Handler) authorizeUser(w http.ResponseWriter, r *http.Request, requested string) (uuid.UUID, bool) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, apperr.Unauthorized("unauthorized"))
		return uuid.Nil, false
	}
	if requested != claims.UserID {
		log.WithField("requested_user", requested).Warn("Quiz access to another user's data")
		config.WriteError(w, r, apperr.Forbidden("cannot access another user's quiz data"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.WriteError(w, r, apperr.Unauthorized("Invalid token payload"))
		return uuid.Nil, false
	}
	return id, true
}
