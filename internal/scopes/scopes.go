// Package scopes enumerates the MyMLH permission scopes and the
// profile fields each one unlocks.
// See https://my.mlh.io/docs#scopes_reference.
package scopes

import "strings"

// The closed set of MyMLH scopes, in catalog order.
const (
	Email        = "email"
	PhoneNumber  = "phone_number"
	Demographics = "demographics"
	Birthday     = "birthday"
	Education    = "education"
	Event        = "event"
)

// Delimiter joins scope names in scope strings ("email+education").
const Delimiter = "+"

var all = []string{Email, PhoneNumber, Demographics, Birthday, Education, Event}

// baseFields are returned for every profile request regardless of the
// granted scopes.
var baseFields = []string{"id", "first_name", "last_name", "created_at", "updated_at"}

var scopeFields = map[string][]string{
	Email:        {"email"},
	PhoneNumber:  {"phone_number"},
	Demographics: {"gender"},
	Birthday:     {"birthday"},
	Education:    {"level_of_study", "major", "school"},
	Event:        {"shirt_size", "dietary_restrictions", "special_needs"},
}

// All returns the fixed ordered list of scope names.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// Join renders a scope list as a "+"-delimited scope string.
func Join(scopes []string) string {
	return strings.Join(scopes, Delimiter)
}

// Split parses a scope string into its scope names. Both "+" and
// whitespace are accepted as delimiters; URL decoding turns the "+"
// separators MyMLH documents into spaces, so the two forms are
// equivalent on the wire.
func Split(scope string) []string {
	return strings.FieldsFunc(scope, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t' || r == '\n'
	})
}

// Match filters the requested scope string down to the scopes present
// in allowed, preserving the requested order. An empty request means
// "everything": the full catalog is requested and then intersected
// with allowed. Unknown scope names are dropped.
func Match(requested string, allowed []string) []string {
	names := Split(requested)
	if len(names) == 0 {
		names = All()
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if allowedSet[name] {
			matched = append(matched, name)
		}
	}
	return matched
}

// Apply builds the scope-filtered view of a complete profile: the
// base fields always, plus the fields unlocked by each recognized
// scope in scopeNames. Fields absent from the complete profile are
// omitted; unknown scope names are ignored.
func Apply(scopeNames []string, complete map[string]any) map[string]any {
	filtered := make(map[string]any, len(baseFields))

	addFields := func(fields []string) {
		for _, field := range fields {
			if value, ok := complete[field]; ok {
				filtered[field] = value
			}
		}
	}

	addFields(baseFields)
	for _, name := range scopeNames {
		addFields(scopeFields[name])
	}
	return filtered
}
