package access

import (
	"errors"
	"net/http"
	"testing"
)

func TestAuthorize(t *testing.T) {
	anon := Identity{}
	user := Identity{ID: "u1", Email: "u1@example.com", Role: RoleUser}
	alumni := Identity{ID: "a1", Email: "a1@example.com", Role: RoleAlumni}
	admin := Identity{ID: "root", Email: "root@example.com", Role: RoleAdmin}

	tests := []struct {
		name       string
		id         Identity
		action     Action
		res        *Resource
		wantStatus int
		wantReason string
	}{
		{name: "admin deletes event", id: admin, action: DeleteEvent},
		{name: "alumni deletes event", id: alumni, action: DeleteEvent, wantStatus: http.StatusForbidden, wantReason: ReasonAdminOnly},
		{name: "anonymous deletes hotel", id: anon, action: DeleteHotel, wantStatus: http.StatusUnauthorized, wantReason: ReasonUnauthorized},
		{name: "user deletes hotel", id: user, action: DeleteHotel, wantStatus: http.StatusForbidden, wantReason: ReasonAdminOnly},
		{name: "owner deletes memory", id: user, action: DeleteMemory, res: &Resource{OwnerID: "u1"}},
		{name: "admin deletes foreign memory", id: admin, action: DeleteMemory, res: &Resource{OwnerID: "u1"}},
		{name: "stranger deletes memory", id: alumni, action: DeleteMemory, res: &Resource{OwnerID: "u1"}, wantStatus: http.StatusForbidden, wantReason: ReasonForbidden},
		{name: "anonymous deletes memory", id: anon, action: DeleteMemory, res: &Resource{OwnerID: "u1"}, wantStatus: http.StatusUnauthorized, wantReason: ReasonUnauthorized},
		{name: "memory precheck without resource", id: alumni, action: DeleteMemory},
		{name: "anonymous rsvp", id: anon, action: SubmitRSVP, wantStatus: http.StatusUnauthorized, wantReason: ReasonUnauthorized},
		{name: "user rsvp", id: user, action: SubmitRSVP},
		{name: "anonymous upload", id: anon, action: UploadFile, wantStatus: http.StatusUnauthorized, wantReason: ReasonUnauthorized},
		{name: "anonymous creates hotel", id: anon, action: CreateHotel},
		{name: "anonymous lists hotels", id: anon, action: ListHotels},
		{name: "anonymous location lookup", id: anon, action: LookupLocation},
		{name: "unknown action", id: admin, action: Action("nope"), wantStatus: http.StatusForbidden, wantReason: ReasonForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.id, tt.action, tt.res)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("Authorize() error = %v, want nil", err)
				}
				return
			}
			var d *Denied
			if !errors.As(err, &d) {
				t.Fatalf("Authorize() error = %v, want *Denied", err)
			}
			if d.Status != tt.wantStatus || d.Reason != tt.wantReason {
				t.Fatalf("Authorize() = %d %q, want %d %q", d.Status, d.Reason, tt.wantStatus, tt.wantReason)
			}
		})
	}
}

func TestEveryActionHasRule(t *testing.T) {
	actions := []Action{
		DeleteEvent, CreateEvent, ListEvents, DeleteHotel, CreateHotel, ListHotels,
		DeleteMemory, CreateMemory, ListMemories, SubmitRSVP, ReadProfile, WriteProfile,
		UploadFile, LookupLocation, ListUsers, ChangeRole, Session,
	}
	for _, a := range actions {
		if _, ok := policy[a]; !ok {
			t.Errorf("no rule for %q", a)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAlumni, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("owner should not be valid")
	}
}
