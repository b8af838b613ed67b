package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when a flow runs without a signed-in session.
var ErrNotAuthenticated = errors.New("not authenticated")

// ClinicType values shared by clinics, patients and the disease master.
const (
	ClinicHuman     = "HUMAN"
	ClinicPet       = "PET"
	ClinicLivestock = "LIVESTOCK"
)

// Session is the externally owned authentication state. Flows only read it.
type Session struct {
	AccessToken string `json:"accessToken"`
	SignedIn    bool   `json:"signedIn"`
}

// Authenticated reports whether a flow may call the API on behalf of the user.
func (s Session) Authenticated() bool {
	return s.SignedIn && s.AccessToken != ""
}

type Role struct {
	ID       string `json:"id,omitempty"`
	RoleName string `json:"roleName"`
}

type ClinicRef struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	ClinicType string `json:"clinicType"`
}

// User is the signed-in operator's profile.
type User struct {
	Username string      `json:"username"`
	TenantID string      `json:"tenantId"`
	ClinicID string      `json:"clinicId"`
	Roles    []Role      `json:"roles"`
	Clinics  []ClinicRef `json:"clinics"`
}

func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.RoleName == name {
			return true
		}
	}
	return false
}

// CurrentClinic returns the clinic the user is working in, if it is listed
// among the user's clinics.
func (u User) CurrentClinic() (ClinicRef, bool) {
	for _, c := range u.Clinics {
		if c.ID == u.ClinicID {
			return c, true
		}
	}
	return ClinicRef{}, false
}

// ClinicType is the type of the current clinic, HUMAN when unknown.
func (u User) ClinicType() string {
	if c, ok := u.CurrentClinic(); ok && c.ClinicType != "" {
		return c.ClinicType
	}
	return ClinicHuman
}

type ctxKey int

const (
	sessionKey ctxKey = iota
	userKey
)

func NewContext(ctx context.Context, s Session, u User) context.Context {
	ctx = context.WithValue(ctx, sessionKey, s)
	return context.WithValue(ctx, userKey, u)
}

// FromContext returns the session and user attached by Middleware. Both are
// zero values when nothing was attached.
func FromContext(ctx context.Context) (Session, User) {
	s, _ := ctx.Value(sessionKey).(Session)
	u, _ := ctx.Value(userKey).(User)
	return s, u
}
