package moderation

import (
	"strings"

	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/content"
)

func titleNoun(kind content.Kind) string {
	noun := kind.Noun()
	return strings.ToUpper(noun[:1]) + noun[1:]
}

func errContentNotFound(kind content.Kind) *admin.Error {
	return admin.NotFound(titleNoun(kind) + " not found")
}

func errDeleteNotAllowed(kind content.Kind) *admin.Error {
	return admin.Forbidden("Only administrators can delete " + kind.Noun() + "s")
}

func errUnknownVerb() *admin.Error {
	return admin.InvalidAction("Invalid action. Must be HIDE, SHOW or DELETE")
}

func errMalformedBody() *admin.Error {
	return admin.InvalidAction("Invalid request body")
}

func errInvalidReason() *admin.Error {
	return admin.InvalidAction("Reason must be at most 500 characters")
}
