package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/response"
)

// Handler handles admin HTTP requests
type Handler struct {
	service *Service
	gate    *Gate
}

// NewHandler creates admin handler
func NewHandler(service *Service, gate *Gate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Me handles GET /admin/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, p *Principal) {
	response.OK(w, PrincipalResponseFrom(p))
}

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ *Principal) {
	page, limit, err := response.Pagination(r, 20, 100)
	if err != nil {
		response.BadRequest(w, "Invalid page")
		return
	}

	filter := user.ListFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  limit,
		Offset: response.Offset(page, limit),
	}
	if role := strings.ToUpper(r.URL.Query().Get("role")); role != "" {
		if !user.IsValidRole(role) {
			response.BadRequest(w, "Invalid role filter")
			return
		}
		rr := user.Role(role)
		filter.Role = &rr
	}

	users, total, err := h.service.ListUsers(r.Context(), filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	items := make([]*UserResponse, len(users))
	for i, u := range users {
		items[i] = UserResponseFromEntity(u)
	}

	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Stats handles GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, _ *Principal) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	response.OK(w, stats)
}

// Activity handles GET /admin/activity
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request, _ *Principal) {
	limit := queryInt(r, "limit", 50, 1, 200)

	logs, err := h.service.RecentActivity(r.Context(), limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	items := make([]*ActivityResponse, len(logs))
	for i, l := range logs {
		items[i] = ActivityResponseFromEntity(l)
	}
	response.OK(w, items)
}

// queryInt reads a positive integer query parameter; max 0 means unbounded
func queryInt(r *http.Request, key string, def, min, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || (max > 0 && v > max) {
		return def
	}
	return v
}
