package speedtest

import (
	"net/http"
	"strconv"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	limit, err := optionalInt(q.Get("limit"), "limit")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	res, err := h.service.Questions(r.Context(), userID, q.Get("topic"), q.Get("level"), limit)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) GetTimeLimit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := optionalInt(q.Get("questions"), "questions")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	res, err := h.service.TimeLimit(q.Get("level"), n)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto SubmitDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.Submit(r.Context(), userID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	res, err := h.service.Submissions(r.Context(), userID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func currentUser(r *http.Request) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("unauthorized")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("Invalid token payload")
	}
	return id, nil
}

func optionalInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name + " must be an integer")
	}
	return n, nil
}
