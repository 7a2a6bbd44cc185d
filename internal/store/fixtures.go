package store

import "github.com/hackry/mymlhmock/internal/scopes"

// Built-in fixture users. John (id 1) has already authorized the
// client for every scope; Jane (id 2) has not, and is the default
// current user. Ids below ReservedIDThreshold are reserved so caller
// fixtures can never collide with these.

// DefaultCurrentUserID is the id the current-user pointer starts at.
const DefaultCurrentUserID = 2

func stringPtr(s string) *string { return &s }

func defaultAuthenticatedUsers() []User {
	return []User{
		{
			ID:                  1,
			Email:               "test@example.com",
			CreatedAt:           "2015-07-08T18:52:43Z",
			UpdatedAt:           "2015-07-27T19:52:28Z",
			FirstName:           "John",
			LastName:            "Doe",
			LevelOfStudy:        "Undergraduate",
			Major:               "Computer Science",
			ShirtSize:           "Unisex - L",
			DietaryRestrictions: "None",
			SpecialNeeds:        stringPtr("None"),
			Birthday:            "1985-10-18",
			Gender:              "Male",
			PhoneNumber:         "+1 555 555 5555",
			School:              &School{ID: 1, Name: "Rutgers University"},
			DidPermitScopes:     scopes.All(),
			WillPermitScopes:    scopes.All(),
		},
	}
}

func defaultUnauthenticatedUsers() []User {
	return []User{
		{
			ID:                  2,
			Email:               "test2@example.com",
			CreatedAt:           "2015-07-08T18:52:43Z",
			UpdatedAt:           "2015-07-27T19:52:28Z",
			FirstName:           "Jane",
			LastName:            "Doe",
			LevelOfStudy:        "Undergraduate",
			Major:               "Computer Science",
			ShirtSize:           "Women's - L",
			DietaryRestrictions: "None",
			SpecialNeeds:        nil,
			Birthday:            "1985-10-18",
			Gender:              "Female",
			PhoneNumber:         "+1 555 555 5555",
			School:              &School{ID: 2, Name: "Stony Brook University"},
			DidPermitScopes:     scopes.All(),
			WillPermitScopes:    scopes.All(),
		},
	}
}
