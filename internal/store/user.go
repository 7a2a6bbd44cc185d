package store

import (
	"encoding/json"

	"github.com/hackry/mymlhmock/internal/scopes"
)

// School is the nested school record on a MyMLH profile.
type School struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is one MyMLH profile record. Profile fields serialize under
// the upstream API's field names; the permit-scope lists are mock
// configuration and never appear in responses.
type User struct {
	ID                  int     `json:"id"`
	FirstName           string  `json:"first_name,omitempty"`
	LastName            string  `json:"last_name,omitempty"`
	CreatedAt           string  `json:"created_at,omitempty"`
	UpdatedAt           string  `json:"updated_at,omitempty"`
	Email               string  `json:"email,omitempty"`
	PhoneNumber         string  `json:"phone_number,omitempty"`
	Gender              string  `json:"gender,omitempty"`
	Birthday            string  `json:"birthday,omitempty"`
	LevelOfStudy        string  `json:"level_of_study,omitempty"`
	Major               string  `json:"major,omitempty"`
	School              *School `json:"school,omitempty"`
	ShirtSize           string  `json:"shirt_size,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`

	// SpecialNeeds is nullable upstream: nil serializes as null.
	SpecialNeeds *string `json:"special_needs"`

	// DidPermitScopes lists the scopes an authenticated user already
	// granted. Empty means all scopes.
	DidPermitScopes []string `json:"-"`

	// WillPermitScopes lists the scopes an unauthenticated user will
	// grant when an authorize request asks for them. Empty means all
	// scopes.
	WillPermitScopes []string `json:"-"`
}

// Fields returns the user's complete profile as a field map, keyed by
// the upstream API field names.
func (u User) Fields() map[string]any {
	raw, err := json.Marshal(u)
	if err != nil {
		panic(err) // User contains no unmarshalable types
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		panic(err)
	}
	return fields
}

func (u *User) normalizeScopes() {
	if len(u.DidPermitScopes) == 0 {
		u.DidPermitScopes = scopes.All()
	}
	if len(u.WillPermitScopes) == 0 {
		u.WillPermitScopes = scopes.All()
	}
}

func (u User) clone() User {
	out := u
	out.DidPermitScopes = append([]string(nil), u.DidPermitScopes...)
	out.WillPermitScopes = append([]string(nil), u.WillPermitScopes...)
	if u.School != nil {
		school := *u.School
		out.School = &school
	}
	if u.SpecialNeeds != nil {
		needs := *u.SpecialNeeds
		out.SpecialNeeds = &needs
	}
	return out
}
