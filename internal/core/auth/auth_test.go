package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
)

func newJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "reunion-test", TTL: time.Hour}
}

func TestIssueParse(t *testing.T) {
	j := newJWTer()
	tok, err := j.Issue(access.Identity{ID: "u1", Email: "u1@example.com", Role: access.RoleAlumni})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	c, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.UID != "u1" || c.Email != "u1@example.com" || c.Role != access.RoleAlumni {
		t.Fatalf("Parse() = %+v", c)
	}
}

func TestParseRejects(t *testing.T) {
	j := newJWTer()
	id := access.Identity{ID: "u1", Role: access.RoleUser}

	other := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, TTL: time.Hour}
	forged, _ := other.Issue(id)

	wrongIss := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: time.Hour}
	foreign, _ := wrongIss.Issue(id)

	expiredJ := &JWTer{Secret: j.Secret, Issuer: j.Issuer, TTL: -time.Hour}
	expired, _ := expiredJ.Issue(id)

	for name, tok := range map[string]string{"forged": forged, "issuer": foreign, "expired": expired, "garbage": "abc.def.ghi"} {
		t.Run(name, func(t *testing.T) {
			if _, err := j.Parse(tok); err == nil {
				t.Fatal("Parse() accepted an invalid token")
			}
		})
	}
}

func TestResolver(t *testing.T) {
	j := newJWTer()
	r := &Resolver{JWT: j, CookieName: "sess"}
	good, _ := j.Issue(access.Identity{ID: "u1", Email: "u1@example.com", Role: access.RoleAdmin})
	badRole, _ := j.Issue(access.Identity{ID: "u2", Role: access.Role("root")})

	tests := []struct {
		name   string
		cookie string
		header string
		wantID string
	}{
		{name: "no session"},
		{name: "cookie", cookie: good, wantID: "u1"},
		{name: "bearer", header: "Bearer " + good, wantID: "u1"},
		{name: "lowercase bearer", header: "bearer " + good, wantID: "u1"},
		{name: "basic scheme ignored", header: "Basic " + good},
		{name: "invalid cookie", cookie: "nope"},
		{name: "invalid cookie falls back to bearer", cookie: "nope", header: "Bearer " + good, wantID: "u1"},
		{name: "unknown-role cookie falls back to bearer", cookie: badRole, header: "Bearer " + good, wantID: "u1"},
		{name: "unknown role", cookie: badRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sess", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			id := r.Resolve(req)
			if id.ID != tt.wantID {
				t.Fatalf("Resolve() = %+v, want id %q", id, tt.wantID)
			}
			if tt.wantID == "" && !id.Anonymous() {
				t.Fatalf("Resolve() = %+v, want anonymous", id)
			}
		})
	}
}

type userTable struct {
	domain.UserRepository
	rows map[string]domain.User
	err  error
}

func (u *userTable) FindByID(id string) (*domain.User, error) {
	if u.err != nil {
		return nil, u.err
	}
	row, ok := u.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func TestResolverTrustsStoredUser(t *testing.T) {
	j := newJWTer()
	users := &userTable{rows: map[string]domain.User{
		"u1": {ID: "u1", Email: "new@example.com", Role: access.RoleUser},
		"u3": {ID: "u3", Email: "u3@example.com", Role: access.Role("legacy")},
	}}
	r := &Resolver{JWT: j, CookieName: "sess", Users: func(context.Context) domain.UserRepository { return users }}

	adminTok, _ := j.Issue(access.Identity{ID: "u1", Email: "old@example.com", Role: access.RoleAdmin})
	goneTok, _ := j.Issue(access.Identity{ID: "u2", Role: access.RoleAdmin})
	legacyTok, _ := j.Issue(access.Identity{ID: "u3", Role: access.RoleAlumni})

	resolve := func(tok string) access.Identity {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		return r.Resolve(req)
	}

	if got := resolve(adminTok); got.ID != "u1" || got.Role != access.RoleUser || got.Email != "new@example.com" {
		t.Fatalf("Resolve() = %+v, want stored role and email", got)
	}
	if got := resolve(goneTok); !got.Anonymous() {
		t.Fatalf("Resolve() for deleted user = %+v, want anonymous", got)
	}
	if got := resolve(legacyTok); !got.Anonymous() {
		t.Fatalf("Resolve() for unknown stored role = %+v, want anonymous", got)
	}

	users.err = errors.New("db down")
	if got := resolve(adminTok); !got.Anonymous() {
		t.Fatalf("Resolve() with failing store = %+v, want anonymous", got)
	}
}
