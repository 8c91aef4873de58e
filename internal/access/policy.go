package access

import "net/http"

type Role string

const (
	RoleUser   Role = "user"
	RoleAlumni Role = "alumni"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// Identity is the caller resolved for the current request. The zero value is anonymous.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) Anonymous() bool { return i.ID == "" }

// Resource carries the ownership facts a rule may need.
type Resource struct {
	OwnerID string
}

type Action string

const (
	DeleteEvent    Action = "event.delete"
	CreateEvent    Action = "event.create"
	ListEvents     Action = "event.list"
	DeleteHotel    Action = "hotel.delete"
	CreateHotel    Action = "hotel.create"
	ListHotels     Action = "hotel.list"
	DeleteMemory   Action = "memory.delete"
	CreateMemory   Action = "memory.create"
	ListMemories   Action = "memory.list"
	SubmitRSVP     Action = "rsvp.submit"
	ReadProfile    Action = "profile.read"
	WriteProfile   Action = "profile.write"
	UploadFile     Action = "file.upload"
	LookupLocation Action = "location.lookup"
	ListUsers      Action = "user.list"
	ChangeRole     Action = "user.role"
	Session        Action = "auth.session"
)

const (
	ReasonUnauthorized = "unauthorized"
	ReasonForbidden    = "forbidden"
	ReasonAdminOnly    = "admin privileges required"
)

// Denied is returned by Authorize. Status is 401 or 403.
type Denied struct {
	Status int
	Reason string
}

func (d *Denied) Error() string { return d.Reason }

func unauthorized() *Denied { return &Denied{Status: http.StatusUnauthorized, Reason: ReasonUnauthorized} }

// Rule decides one action. A nil resource means only the identity half is evaluated.
type Rule func(id Identity, res *Resource) *Denied

func Public(Identity, *Resource) *Denied { return nil }

func Authenticated(id Identity, _ *Resource) *Denied {
	if id.Anonymous() {
		return unauthorized()
	}
	return nil
}

func AdminOnly(id Identity, _ *Resource) *Denied {
	if id.Anonymous() {
		return unauthorized()
	}
	if id.Role != RoleAdmin {
		return &Denied{Status: http.StatusForbidden, Reason: ReasonAdminOnly}
	}
	return nil
}

func OwnerOrAdmin(id Identity, res *Resource) *Denied {
	if id.Anonymous() {
		return unauthorized()
	}
	if res == nil || id.Role == RoleAdmin || res.OwnerID == id.ID {
		return nil
	}
	return &Denied{Status: http.StatusForbidden, Reason: ReasonForbidden}
}

var policy = map[Action]Rule{
	DeleteEvent:    AdminOnly,
	CreateEvent:    AdminOnly,
	ListEvents:     Public,
	DeleteHotel:    AdminOnly,
	CreateHotel:    Public,
	ListHotels:     Public,
	DeleteMemory:   OwnerOrAdmin,
	CreateMemory:   Authenticated,
	ListMemories:   Public,
	SubmitRSVP:     Authenticated,
	ReadProfile:    Authenticated,
	WriteProfile:   Authenticated,
	UploadFile:     Authenticated,
	LookupLocation: Public,
	ListUsers:      AdminOnly,
	ChangeRole:     AdminOnly,
	Session:        Public,
}

// Authorize evaluates the policy table. Unknown actions are denied.
func Authorize(id Identity, a Action, res *Resource) error {
	rule, ok := policy[a]
	if !ok {
		return &Denied{Status: http.StatusForbidden, Reason: ReasonForbidden}
	}
	if d := rule(id, res); d != nil {
		return d
	}
	return nil
}
