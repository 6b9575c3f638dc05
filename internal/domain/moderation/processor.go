package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/content"
	"github.com/persona/persona-api/internal/domain/notification"
	"github.com/persona/persona-api/internal/pkg/logger"
)

// ContentStore is the content storage the processor mutates
type ContentStore interface {
	FindByID(ctx context.Context, kind content.Kind, id uuid.UUID) (*content.Item, error)
	UpdateVisibility(ctx context.Context, kind content.Kind, id uuid.UUID, visible bool, reason string) (*content.Item, error)
	Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error
	ListHidden(ctx context.Context, kind content.Kind, limit, offset int) ([]*content.Item, int, error)
}

// AuthorNotifier delivers notifications to content authors. Implementations
// must not fail the caller.
type AuthorNotifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind notification.Kind, title, message string) bool
}

// AuditLogger records staff actions
type AuditLogger interface {
	LogAction(ctx context.Context, actor *admin.Principal, action, entityType string, entityID uuid.UUID, reason string)
}

// Processor applies HIDE, SHOW and DELETE to posts and comments
type Processor struct {
	content  ContentStore
	notifier AuthorNotifier
	audit    AuditLogger
}

// NewProcessor creates moderation processor. audit may be nil.
func NewProcessor(store ContentStore, notifier AuthorNotifier, audit AuditLogger) *Processor {
	return &Processor{content: store, notifier: notifier, audit: audit}
}

// Moderate runs one action. Errors are *admin.Error values or wrapped
// storage failures.
func (p *Processor) Moderate(ctx context.Context, a Action) (*Result, error) {
	verb, ok := ParseVerb(string(a.Verb))
	if !ok || !a.Kind.IsValid() {
		return nil, errUnknownVerb()
	}
	if a.Principal == nil {
		return nil, admin.Unauthorized()
	}

	// DELETE is irreversible and reserved for admins, whatever the gate allowed
	if verb == VerbDelete && !a.Principal.IsAdmin() {
		return nil, errDeleteNotAllowed(a.Kind)
	}

	if a.ContentID == uuid.Nil {
		return nil, errContentNotFound(a.Kind)
	}

	item, err := p.content.FindByID(ctx, a.Kind, a.ContentID)
	if err != nil {
		return nil, admin.Internal(fmt.Errorf("load %s: %w", a.Kind.Noun(), err))
	}
	if item == nil {
		return nil, errContentNotFound(a.Kind)
	}

	var updated *content.Item
	switch verb {
	case VerbHide:
		if item.Visibility() == content.Hidden {
			return nil, admin.InvalidAction(titleNoun(a.Kind) + " is already hidden")
		}
		updated, err = p.content.UpdateVisibility(ctx, a.Kind, item.ID, false, a.Reason)
	case VerbShow:
		if item.Visibility() == content.Visible {
			return nil, admin.InvalidAction(titleNoun(a.Kind) + " is not hidden")
		}
		updated, err = p.content.UpdateVisibility(ctx, a.Kind, item.ID, true, "")
	case VerbDelete:
		err = p.content.Delete(ctx, a.Kind, item.ID)
	}
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return nil, errContentNotFound(a.Kind)
		}
		return nil, admin.Internal(fmt.Errorf("%s %s: %w", verb, a.Kind.Noun(), err))
	}

	p.notifyAuthor(ctx, item, verb, a.Reason)

	if p.audit != nil {
		p.audit.LogAction(ctx, a.Principal, a.Kind.Noun()+"."+strings.ToLower(string(verb)), string(a.Kind), item.ID, a.Reason)
	}

	logger.FromContext(ctx).Info().
		Str("actor_id", a.Principal.ID.String()).
		Str("kind", string(a.Kind)).
		Str("content_id", item.ID.String()).
		Str("verb", string(verb)).
		Msg("Content moderated")

	return &Result{
		Item:    updated,
		Message: fmt.Sprintf("%s %s successfully", titleNoun(a.Kind), pastTense[verb]),
	}, nil
}

// ListHidden returns the hidden items queue for kind
func (p *Processor) ListHidden(ctx context.Context, kind content.Kind, limit, offset int) ([]*content.Item, int, error) {
	if !kind.IsValid() {
		return nil, 0, admin.InvalidAction("Invalid content kind")
	}
	return p.content.ListHidden(ctx, kind, limit, offset)
}

func (p *Processor) notifyAuthor(ctx context.Context, item *content.Item, verb Verb, reason string) {
	if p.notifier == nil {
		return
	}

	noun := item.Kind.Noun()
	var (
		kind    notification.Kind
		title   string
		message string
	)
	switch verb {
	case VerbHide:
		kind = notification.KindContentHidden
		title = titleNoun(item.Kind) + " hidden"
		message = withReason("Your "+noun+" has been hidden by a moderator", reason)
	case VerbShow:
		kind = notification.KindContentRestored
		title = titleNoun(item.Kind) + " restored"
		message = "Your " + noun + " has been restored by a moderator"
	case VerbDelete:
		kind = notification.KindContentDeleted
		title = titleNoun(item.Kind) + " deleted"
		message = withReason("Your "+noun+" has been deleted by an administrator", reason)
	}

	p.notifier.Notify(ctx, item.AuthorID, kind, title, message)
}

func withReason(message, reason string) string {
	if reason == "" {
		return message
	}
	return message + ": " + reason
}

