package discussion

import (
	"context"
	"net/http"
	"strconv"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const nextCursorHeader = "X-Next-Cursor"

// UserDirectory resolves display names for tokens issued without one.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Handler struct {
	service Service
	users   UserDirectory
}

func NewHandler(service Service, users UserDirectory) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			config.WriteError(w, r, apperr.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	page, err := h.service.List(r.Context(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if page.NextCursor != "" {
		w.Header().Set(nextCursorHeader, page.NextCursor)
	}
	items := page.Items
	if items == nil {
		items = []Discussion{}
	}
	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, d)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	author, err := h.currentAuthor(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateDiscussionDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	d, err := h.service.Create(r.Context(), dto, author)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, d)
}

func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	author, err := h.currentAuthor(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateReplyDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	if _, err := h.service.AddReply(r.Context(), dto, author); err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Reply added"})
}

func (h *Handler) Replies(w http.ResponseWriter, r *http.Request) {
	replies, err := h.service.Replies(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, replies)
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	author, err := h.currentAuthor(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto VoteDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.Vote(r.Context(), chi.URLParam(r, "id"), author.ID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

// currentAuthor prefers the name cached in the token and falls back to the
// users table.
func (h *Handler) currentAuthor(r *http.Request) (Author, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return Author{}, apperr.Unauthorized("unauthorized")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Author{}, apperr.Unauthorized("Invalid token payload")
	}

	if claims.Name != "" {
		return Author{ID: id, Name: claims.Name}, nil
	}
	u, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		return Author{}, err
	}
	return Author{ID: id, Name: u.Name}, nil
}
