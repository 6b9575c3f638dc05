package moderation

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/content"
	"github.com/persona/persona-api/internal/pkg/response"
	"github.com/persona/persona-api/internal/pkg/validator"
)

// Handler handles admin content moderation requests
type Handler struct {
	processor *Processor
	gate      *admin.Gate
}

// NewHandler creates moderation handler
func NewHandler(processor *Processor, gate *admin.Gate) *Handler {
	return &Handler{processor: processor, gate: gate}
}

// ModeratePost handles PUT /admin/content/posts/{postId}
func (h *Handler) ModeratePost(w http.ResponseWriter, r *http.Request, p *admin.Principal) {
	h.moderate(w, r, p, content.KindPost, chi.URLParam(r, "postId"))
}

// ModerateComment handles PUT /admin/content/comments/{commentId}
func (h *Handler) ModerateComment(w http.ResponseWriter, r *http.Request, p *admin.Principal) {
	h.moderate(w, r, p, content.KindComment, chi.URLParam(r, "commentId"))
}

// DeleteComment handles DELETE /admin/content/comments/{commentId}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request, p *admin.Principal) {
	var req DeleteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		admin.WriteError(w, r, errMalformedBody())
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		admin.WriteError(w, r, errInvalidReason())
		return
	}

	h.run(w, r, Action{
		Kind:      content.KindComment,
		ContentID: parseID(chi.URLParam(r, "commentId")),
		Verb:      VerbDelete,
		Reason:    strings.TrimSpace(req.Reason),
		Principal: p,
	})
}

// ListHiddenPosts handles GET /admin/content/posts?status=hidden
func (h *Handler) ListHiddenPosts(w http.ResponseWriter, r *http.Request, _ *admin.Principal) {
	h.listHidden(w, r, content.KindPost)
}

// ListHiddenComments handles GET /admin/content/comments?status=hidden
func (h *Handler) ListHiddenComments(w http.ResponseWriter, r *http.Request, _ *admin.Principal) {
	h.listHidden(w, r, content.KindComment)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, p *admin.Principal, kind content.Kind, rawID string) {
	var req ModerateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		admin.WriteError(w, r, errMalformedBody())
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		admin.WriteError(w, r, errInvalidReason())
		return
	}

	h.run(w, r, Action{
		Kind:      kind,
		ContentID: parseID(rawID),
		Verb:      Verb(req.Action),
		Reason:    strings.TrimSpace(req.Reason),
		Principal: p,
	})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, a Action) {
	result, err := h.processor.Moderate(r.Context(), a)
	if err != nil {
		admin.WriteError(w, r, err)
		return
	}

	if result.Item == nil {
		response.OKWithMessage(w, nil, result.Message)
		return
	}
	response.OKWithMessage(w, ContentResponseFromItem(result.Item), result.Message)
}

func (h *Handler) listHidden(w http.ResponseWriter, r *http.Request, kind content.Kind) {
	if status := strings.ToLower(r.URL.Query().Get("status")); status != "" && status != "hidden" {
		response.BadRequest(w, "Unsupported status filter")
		return
	}

	page, limit, err := response.Pagination(r, 20, 100)
	if err != nil {
		response.BadRequest(w, "Invalid page")
		return
	}

	items, total, err := h.processor.ListHidden(r.Context(), kind, limit, response.Offset(page, limit))
	if err != nil {
		admin.WriteError(w, r, err)
		return
	}

	out := make([]*ContentResponse, len(items))
	for i, item := range items {
		out[i] = ContentResponseFromItem(item)
	}

	response.WithMeta(w, out, response.NewMeta(total, page, limit))
}

// parseID maps malformed ids to uuid.Nil, which the processor reports as not found
func parseID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
