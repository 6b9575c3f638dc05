package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/persona/persona-api/internal/domain/admin"
)

// Routes returns the admin content router, mounted under /admin/content.
// Every route needs CONTENT_MODERATION; DELETE is further restricted to
// admins by the processor.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	guard := h.gate.Guard(admin.PermContentModeration)

	r.Method(http.MethodGet, "/posts", guard(h.ListHiddenPosts))
	r.Method(http.MethodPut, "/posts/{postId}", guard(h.ModeratePost))

	r.Method(http.MethodGet, "/comments", guard(h.ListHiddenComments))
	r.Method(http.MethodPut, "/comments/{commentId}", guard(h.ModerateComment))
	r.Method(http.MethodDelete, "/comments/{commentId}", guard(h.DeleteComment))

	return r
}
