package user

import (
	"net/http"

	"github.com/crackit360/crackit360-api/internal/apperr"
	"github.com/crackit360/crackit360-api/internal/auth"
	"github.com/crackit360/crackit360-api/internal/config"
)

type Handler struct {
	service      Service
	cookieDomain string
	secureCookie bool
}

func NewHandler(service Service, cookieDomain string, secureCookie bool) *Handler {
	return &Handler{service: service, cookieDomain: cookieDomain, secureCookie: secureCookie}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.Register(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.Login(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	h.setTokenCookie(w, res.AccessToken)
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.GoogleLogin(r.Context(), dto)
	if err != nil {
		log.WithError(err).Warn("Google login failed")
		config.WriteError(w, r, err)
		return
	}
	h.setTokenCookie(w, res.AccessToken)
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.ForgotPassword(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if !config.DecodeJSON(w, r, &dto) {
		return
	}

	res, err := h.service.ResetPassword(r.Context(), dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.WriteError(w, r, apperr.Unauthorized("unauthorized"))
		return
	}

	u, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
