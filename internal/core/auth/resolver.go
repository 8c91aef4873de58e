package auth

import (
	"context"
	"net/http"
	"strings"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
)

// Resolver turns the session artifact of a request into an Identity.
// The cookie is tried before the Authorization header.
type Resolver struct {
	JWT        *JWTer
	CookieName string
	// Users, when set, makes the stored user authoritative for role and
	// existence; the token only names the user.
	Users func(ctx context.Context) domain.UserRepository
}

// Resolve never fails: a missing, malformed, expired or forged token yields the anonymous identity,
// as does a token naming a user that no longer exists.
func (r *Resolver) Resolve(req *http.Request) access.Identity {
	for _, tok := range r.tokens(req) {
		if id, ok := r.resolve(req.Context(), tok); ok {
			return id
		}
	}
	return access.Identity{}
}

func (r *Resolver) resolve(ctx context.Context, tok string) (access.Identity, bool) {
	c, err := r.JWT.Parse(tok)
	if err != nil || c.UID == "" || !c.Role.Valid() {
		return access.Identity{}, false
	}
	if r.Users == nil {
		return access.Identity{ID: c.UID, Email: c.Email, Role: c.Role}, true
	}
	u, err := r.Users(ctx).FindByID(c.UID)
	if err != nil || !u.Role.Valid() {
		return access.Identity{}, false
	}
	return u.Identity(), true
}

func (r *Resolver) tokens(req *http.Request) []string {
	var out []string
	if r.CookieName != "" {
		if ck, err := req.Cookie(r.CookieName); err == nil && ck.Value != "" {
			out = append(out, ck.Value)
		}
	}
	ah := req.Header.Get("Authorization")
	if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
		if t := strings.TrimSpace(ah[7:]); t != "" {
			out = append(out, t)
		}
	}
	return out
}
