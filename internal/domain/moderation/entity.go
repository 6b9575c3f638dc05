package moderation

import (
	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/content"
)

// Verb is a moderation command
type Verb string

const (
	VerbHide   Verb = "HIDE"
	VerbShow   Verb = "SHOW"
	VerbDelete Verb = "DELETE"
)

// ParseVerb matches a client supplied verb exactly; ok is false for anything else
func ParseVerb(s string) (Verb, bool) {
	v := Verb(s)
	switch v {
	case VerbHide, VerbShow, VerbDelete:
		return v, true
	}
	return v, false
}

// Action is one moderation request against a single content item
type Action struct {
	Kind      content.Kind
	ContentID uuid.UUID
	Verb      Verb
	Reason    string
	Principal *admin.Principal
}

// Result is the outcome of a successful action.
// Item is nil after DELETE since the row no longer exists.
type Result struct {
	Item    *content.Item
	Message string
}

// pastTense is used in confirmations and audit action names
var pastTense = map[Verb]string{
	VerbHide:   "hidden",
	VerbShow:   "shown",
	VerbDelete: "deleted",
}
