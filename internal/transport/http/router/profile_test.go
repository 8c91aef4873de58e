package router

import (
	"net/http"
	"testing"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
)

type profileBody struct {
	User    *domain.User          `json:"user"`
	Profile *domain.AlumniProfile `json:"profile"`
}

func TestProfileMe(t *testing.T) {
	e := newEnv(t)
	u, tok := e.user("jane@example.com", access.RoleAlumni)

	got := decode[profileBody](t, e.call(http.MethodGet, "/profile/me", nil, tok))
	if got.User == nil || got.User.ID != u.ID || got.Profile != nil {
		t.Fatalf("before upsert = %+v", got)
	}

	w := e.call(http.MethodPut, "/profile/me", map[string]any{"fullName": "Jane Doe", "graduationYear": 2009, "phone": "555-0100"}, tok)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d (%s)", w.Code, w.Body.String())
	}
	first := decode[profileBody](t, w).Profile

	if w := e.call(http.MethodPost, "/rsvp", map[string]any{"adults": 2}, tok); w.Code != http.StatusOK {
		t.Fatalf("rsvp status = %d", w.Code)
	}
	w = e.call(http.MethodPut, "/profile/me", map[string]any{"fullName": "Jane Q. Doe", "graduationYear": 2009}, tok)
	second := decode[profileBody](t, w).Profile
	if second.ID != first.ID || second.FullName != "Jane Q. Doe" || second.Email != u.Email {
		t.Fatalf("second upsert = %+v", second)
	}
	if second.RSVPAdults != 2 {
		t.Fatalf("upsert reset rsvp: adults = %d", second.RSVPAdults)
	}

	wantError(t, e.call(http.MethodPut, "/profile/me", map[string]any{"graduationYear": 1200}, tok), http.StatusBadRequest, "")
}

func TestProfileMeErrors(t *testing.T) {
	e := newEnv(t)
	wantError(t, e.call(http.MethodGet, "/profile/me", nil, ""), http.StatusUnauthorized, "unauthorized")

	u, tok := e.user("ghost@example.com", access.RoleUser)
	if err := e.db.Delete(&domain.User{}, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	// a token outliving its user no longer authenticates
	wantError(t, e.call(http.MethodGet, "/profile/me", nil, tok), http.StatusUnauthorized, "unauthorized")

	if _, err := repo.NewUserRepo(e.db).FindByID(u.ID); err == nil {
		t.Fatal("user still present")
	}
}
