package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/content"
)

// ModerateRequest is the body of PUT /admin/content/{kind}/{id}
type ModerateRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// DeleteRequest is the optional body of DELETE /admin/content/comments/{id}
type DeleteRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// ContentResponse for API
type ContentResponse struct {
	ID           uuid.UUID          `json:"id"`
	Kind         content.Kind       `json:"kind"`
	AuthorID     uuid.UUID          `json:"author_id"`
	PostID       *uuid.UUID         `json:"post_id,omitempty"`
	Body         string             `json:"body"`
	Visibility   content.Visibility `json:"visibility"`
	HiddenReason *string            `json:"hidden_reason,omitempty"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// ContentResponseFromItem converts an item to response
func ContentResponseFromItem(item *content.Item) *ContentResponse {
	resp := &ContentResponse{
		ID:         item.ID,
		Kind:       item.Kind,
		AuthorID:   item.AuthorID,
		Body:       item.Body,
		Visibility: item.Visibility(),
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt.Format(time.RFC3339),
	}
	if item.PostID.Valid {
		id := item.PostID.UUID
		resp.PostID = &id
	}
	if item.HiddenReason.Valid {
		reason := item.HiddenReason.String
		resp.HiddenReason = &reason
	}
	return resp
}
