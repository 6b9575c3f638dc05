package admin

import (
	"context"
	"net/http"

	"github.com/persona/persona-api/internal/pkg/logger"
)

// PrincipalResolver resolves the actor of a request
type PrincipalResolver interface {
	ResolvePrincipal(r *http.Request) (*Principal, error)
}

// Operation is an admin handler that receives the authorized principal
type Operation func(w http.ResponseWriter, r *http.Request, p *Principal)

type contextKey string

const principalKey contextKey = "admin_principal"

// Gate authorizes admin requests. It holds no mutable state.
type Gate struct {
	resolver PrincipalResolver
}

// NewGate creates admin gate
func NewGate(resolver PrincipalResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authorize resolves the principal and checks it may use perm.
// An empty perm only requires an admin or moderator.
func (g *Gate) Authorize(r *http.Request, perm Permission) (*Principal, error) {
	p, err := g.resolver.ResolvePrincipal(r)
	if err != nil {
		// Fail closed: a resolution failure is treated as no principal
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to resolve admin principal")
		return nil, Unauthorized()
	}
	if p == nil {
		return nil, Unauthorized()
	}

	if !IsStaff(p.Role) {
		return nil, Forbidden(ErrForbidden.Message)
	}

	if perm != "" && !HasPermission(p.Role, perm) {
		return nil, Forbidden(ErrForbidden.Message)
	}

	return p, nil
}

// Guard wraps op so it only runs for principals holding perm
func (g *Gate) Guard(perm Permission) func(Operation) http.Handler {
	return func(op Operation) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := g.Authorize(r, perm)
			if err != nil {
				WriteError(w, r, err)
				return
			}
			op(w, r.WithContext(WithPrincipal(r.Context(), p)), p)
		})
	}
}

// Require is the chi middleware form of Guard; handlers read the principal
// with PrincipalFromContext
func (g *Gate) Require(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.Guard(perm)(func(w http.ResponseWriter, r *http.Request, _ *Principal) {
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff admits any active admin or moderator
func (g *Gate) RequireStaff() func(http.Handler) http.Handler {
	return g.Require("")
}

// WithPrincipal stores p in ctx
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal stored by the gate, or nil
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
