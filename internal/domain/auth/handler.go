package auth

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/persona/persona-api/internal/middleware"
	"github.com/persona/persona-api/internal/pkg/response"
	"github.com/persona/persona-api/internal/pkg/session"
	"github.com/persona/persona-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service      *Service
	secureCookie bool
}

// NewHandler creates auth handler. secureCookie marks the session cookie Secure.
func NewHandler(service *Service, secureCookie bool) *Handler {
	return &Handler{service: service, secureCookie: secureCookie}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrUserInactive):
			response.Forbidden(w, "Account is deactivated")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("failed to login user")
			response.InternalError(w)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    result.AccessToken,
		Path:     "/",
		Expires:  result.expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), middleware.GetSession(r.Context())); err != nil {
		log.Error().Err(err).Msg("failed to revoke session")
		response.InternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	response.OKWithMessage(w, nil, "Logged out successfully")
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Msg("failed to load current user")
		response.InternalError(w)
		return
	}

	response.OK(w, NewUserResponse(u))
}
