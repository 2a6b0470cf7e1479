package technical

import (
	"net/http"

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
	res, err := h.service.Questions(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !config.DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.service.Run(r.Context(), req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, apperr.Unauthorized("unauthorized"))
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.WriteError(w, r, apperr.Unauthorized("Invalid token payload"))
		return
	}

	var dto SubmitDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	sub, err := h.service.Submit(r.Context(), userID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, sub)
}
