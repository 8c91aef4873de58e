package router

import (
	"net/http"
	"slices"
	"testing"

	"alumni-reunion/internal/access"
	"alumni-reunion/internal/domain"
	"alumni-reunion/internal/repo"
)

func countHotels(t *testing.T, e *testEnv) int {
	t.Helper()
	hs, err := repo.NewHotelRepo(e.db).ListByName()
	if err != nil {
		t.Fatalf("list hotels: %v", err)
	}
	return len(hs)
}

func TestCreateHotelValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
		tag   string
		msg   string
	}{
		{name: "missing url", body: map[string]any{"hotelName": "Hilton"}, field: "WebsiteURL", tag: "required"},
		{name: "missing name", body: map[string]any{"websiteUrl": "https://hilton.example"}, field: "HotelName", tag: "required"},
		{name: "not a url", body: map[string]any{"hotelName": "Hilton", "websiteUrl": "hilton"}, field: "WebsiteURL", tag: "http_url"},
		{name: "ftp url", body: map[string]any{"hotelName": "Hilton", "websiteUrl": "ftp://hilton.example"}, field: "WebsiteURL", tag: "http_url"},
		{name: "blank name", body: map[string]any{"hotelName": "  ", "websiteUrl": "https://hilton.example"}, msg: "hotelName is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			w := e.call(http.MethodPost, "/hotels", tt.body, "")
			if tt.field != "" {
				wantBindError(t, w, tt.field, tt.tag)
			} else {
				wantError(t, w, http.StatusBadRequest, tt.msg)
			}
			if n := countHotels(t, e); n != 0 {
				t.Fatalf("hotels = %d, want 0", n)
			}
			if calls := e.pages.calls(); len(calls) != 0 {
				t.Fatalf("invalidations = %v", calls)
			}
		})
	}
}

func TestCreateAndListHotels(t *testing.T) {
	e := newEnv(t)
	u, tok := e.user("alice@example.com", access.RoleAlumni)

	w := e.call(http.MethodPost, "/hotels", map[string]any{"hotelName": "Marriott", "websiteUrl": "https://marriott.example"}, tok)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}
	created := decode[struct {
		Success bool         `json:"success"`
		Data    domain.Hotel `json:"data"`
	}](t, w)
	if !created.Success || created.Data.UserID == nil || *created.Data.UserID != u.ID {
		t.Fatalf("create body = %+v", created)
	}

	// anonymous callers may add hotels too
	if w := e.call(http.MethodPost, "/hotels", map[string]any{"hotelName": "Hilton", "websiteUrl": "http://hilton.example"}, ""); w.Code != http.StatusCreated {
		t.Fatalf("anonymous create status = %d", w.Code)
	}

	w = e.call(http.MethodGet, "/hotels", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := decode[struct {
		Hotels []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"hotels"`
	}](t, w)
	var names []string
	for _, h := range list.Hotels {
		names = append(names, h.Name)
	}
	if !slices.Equal(names, []string{"Hilton", "Marriott"}) {
		t.Fatalf("names = %v", names)
	}
	if calls := e.pages.calls(); !slices.Equal(calls, []string{PageHotels, PageHotels}) {
		t.Fatalf("invalidations = %v", calls)
	}
}

func TestDeleteHotelGuard(t *testing.T) {
	e := newEnv(t)
	e.hotel("H1", "Hilton")
	_, tok := e.user("bob@example.com", access.RoleUser)

	wantError(t, e.call(http.MethodDelete, "/hotels/H1", nil, tok), http.StatusForbidden, "admin privileges required")
	wantError(t, e.call(http.MethodDelete, "/hotels/H1", nil, ""), http.StatusUnauthorized, "unauthorized")

	if n := countHotels(t, e); n != 1 {
		t.Fatalf("hotels = %d, want 1", n)
	}
	if calls := e.pages.calls(); len(calls) != 0 {
		t.Fatalf("invalidations = %v", calls)
	}
}

func TestDeleteHotelClearsSelections(t *testing.T) {
	e := newEnv(t)
	e.hotel("H1", "Hilton")
	e.hotel("H2", "Marriott")
	_, adminTok := e.user("root@example.com", access.RoleAdmin)
	guest, guestTok := e.user("guest@example.com", access.RoleAlumni)
	e.profile(guest)

	if w := e.call(http.MethodPost, "/rsvp", map[string]any{"adults": 1, "hotelId": "H1"}, guestTok); w.Code != http.StatusOK {
		t.Fatalf("rsvp status = %d (%s)", w.Code, w.Body.String())
	}

	for i := 0; i < 2; i++ {
		w := e.call(http.MethodDelete, "/hotels/H1", nil, adminTok)
		if w.Code != http.StatusOK {
			t.Fatalf("delete #%d status = %d (%s)", i+1, w.Code, w.Body.String())
		}
	}

	p := loadProfile(t, e, guest)
	if p.HotelSelectionID != nil {
		t.Fatalf("hotel selection = %q, want nil", *p.HotelSelectionID)
	}
	if p.RSVPAdults != 1 {
		t.Fatalf("adults = %d, want 1", p.RSVPAdults)
	}
	if n := countHotels(t, e); n != 1 {
		t.Fatalf("hotels = %d, want 1", n)
	}
	if calls := e.pages.calls(); !slices.Equal(calls, []string{PageHotels, PageHotels}) {
		t.Fatalf("invalidations = %v", calls)
	}
}
