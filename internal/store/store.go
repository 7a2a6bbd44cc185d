// Package store holds the mutable state behind the mock MyMLH
// provider: client credentials, registered callback URLs, user
// records, the current-user pointer, and issued authorization codes
// and access tokens.
//
// A Store is constructed per mock instance and shared by every
// handler of that instance. All state is guarded by a single mutex so
// mutations are atomically ordered, which the protocol handlers rely
// on for multi-step flows.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hackry/mymlhmock/internal/callback"
	"github.com/hackry/mymlhmock/internal/randstr"
	"github.com/hackry/mymlhmock/internal/scopes"
)

const (
	// ReservedIDThreshold is the first user id available to callers;
	// ids below it are reserved for built-in fixtures.
	ReservedIDThreshold = 100

	authorizationCodeLength = 16
	accessTokenLength       = 64
)

var (
	// ErrMissingUserID is returned when a user record has no id.
	ErrMissingUserID = errors.New("all users must have an id")

	// ErrReservedUserID is returned for user ids below ReservedIDThreshold.
	ErrReservedUserID = errors.New("user ids below 100 are restricted")

	// ErrDuplicateUserID is returned when a user id is already taken,
	// in either the authenticated or the unauthenticated set.
	ErrDuplicateUserID = errors.New("duplicate user id")

	// ErrInvalidCurrentUser is returned when the current-user pointer
	// would not reference an existing unauthenticated user.
	ErrInvalidCurrentUser = errors.New("invalid current user")
)

// Client is the OAuth client registered with the mock provider.
type Client struct {
	ID     string
	Secret string
}

// Authorization is an issued authorization code together with the
// redirect URL and scope string it was bound to.
type Authorization struct {
	Code        string
	RedirectURL string
	Scope       string
}

// Token is an issued access token and the scope string it grants.
type Token struct {
	AccessToken string
	Scope       string
}

// Store is the in-memory session state of one mock provider instance.
type Store struct {
	mu sync.RWMutex

	client        Client
	callbackURLs  []string
	matchers      []*callback.Matcher
	currentUserID int

	authenticated   []User
	unauthenticated []User

	// Both maps are keyed by user id.
	authorizationCodes map[int]Authorization
	accessTokens       map[int]Token
}

// New returns a store holding the default snapshot: the built-in
// fixture users, no client, no callback URLs, and empty code and
// token maps.
func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

// Reset restores the default snapshot. Fixture users are re-seeded
// from scratch, so mutations to previously returned records do not
// leak across test cases.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.client = Client{}
	s.callbackURLs = nil
	s.matchers = nil
	s.currentUserID = DefaultCurrentUserID
	s.authenticated = defaultAuthenticatedUsers()
	s.unauthenticated = defaultUnauthenticatedUsers()
	s.authorizationCodes = make(map[int]Authorization)
	s.accessTokens = make(map[int]Token)
}

// SetClient registers the OAuth client credentials.
func (s *Store) SetClient(client Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// GetClient returns the registered OAuth client credentials.
func (s *Store) GetClient() Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// SetCallbackURLs replaces the registered callback URLs atomically.
func (s *Store) SetCallbackURLs(urls []string) {
	matchers := make([]*callback.Matcher, len(urls))
	for i, u := range urls {
		matchers[i] = callback.Compile(u)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbackURLs = append([]string(nil), urls...)
	s.matchers = matchers
}

// CallbackURLs returns the registered callback URLs.
func (s *Store) CallbackURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.callbackURLs...)
}

// IsValidRedirectURL reports whether redirectURI matches any
// registered callback URL, either exactly or as a sub-path.
func (s *Store) IsValidRedirectURL(redirectURI string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matchers {
		if m.Match(redirectURI) {
			return true
		}
	}
	return false
}

// CurrentUserID returns the id of the user currently "logged in" to
// the simulated MyMLH site.
func (s *Store) CurrentUserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUserID
}

// SetCurrentUserID points the current-user pointer at an
// unauthenticated user. Authenticated users are rejected: the current
// user simulates a browsing session that has not yet authorized the
// client.
func (s *Store) SetCurrentUserID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findUser(s.authenticated, id); ok {
		return fmt.Errorf("%w: current user id must be for an unauthenticated user", ErrInvalidCurrentUser)
	}
	if _, ok := findUser(s.unauthenticated, id); !ok {
		return fmt.Errorf("%w: no unauthenticated user with id %d", ErrInvalidCurrentUser, id)
	}

	s.currentUserID = id
	return nil
}

// UserByID returns the user with the given id from either set.
func (s *Store) UserByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := findUser(s.authenticated, id); ok {
		return u, true
	}
	return findUser(s.unauthenticated, id)
}

// AuthenticatedUserByID returns the authenticated user with the given id.
func (s *Store) AuthenticatedUserByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findUser(s.authenticated, id)
}

// UnauthenticatedUserByID returns the unauthenticated user with the given id.
func (s *Store) UnauthenticatedUserByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findUser(s.unauthenticated, id)
}

// AuthenticatedUsers returns a copy of the authenticated user list.
func (s *Store) AuthenticatedUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUsers(s.authenticated)
}

// UnauthenticatedUsers returns a copy of the unauthenticated user list.
func (s *Store) UnauthenticatedUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUsers(s.unauthenticated)
}

// AddAuthenticatedUser appends a user that has already granted its
// scopes. An access token covering the granted scopes is minted
// immediately so tests can call the profile endpoint without running
// a flow first.
func (s *Store) AddAuthenticatedUser(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateNewUserLocked(user); err != nil {
		return err
	}

	user.normalizeScopes()
	s.authenticated = append(s.authenticated, user.clone())
	s.addAccessTokenLocked(user.ID, scopes.Join(user.DidPermitScopes))
	return nil
}

// AddUnauthenticatedUser appends a user that has not yet authorized
// the client. The user's WillPermitScopes bound what an authorize
// request may be granted.
func (s *Store) AddUnauthenticatedUser(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateNewUserLocked(user); err != nil {
		return err
	}

	user.normalizeScopes()
	s.unauthenticated = append(s.unauthenticated, user.clone())
	return nil
}

func (s *Store) validateNewUserLocked(user User) error {
	if user.ID == 0 {
		return ErrMissingUserID
	}
	if user.ID < ReservedIDThreshold {
		return fmt.Errorf("%w: %d", ErrReservedUserID, user.ID)
	}
	if _, ok := findUser(s.authenticated, user.ID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateUserID, user.ID)
	}
	if _, ok := findUser(s.unauthenticated, user.ID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateUserID, user.ID)
	}
	return nil
}

// AddAuthorizationCode mints a fresh 16-character code for the user,
// bound to the given redirect URL and scope string. Any previous code
// for the user is overwritten.
func (s *Store) AddAuthorizationCode(userID int, redirectURL, scope string) Authorization {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth := Authorization{
		Code:        randstr.String(authorizationCodeLength),
		RedirectURL: redirectURL,
		Scope:       scope,
	}
	s.authorizationCodes[userID] = auth
	return auth
}

// AuthorizationCode returns the stored authorization code record for
// the user, if any.
func (s *Store) AuthorizationCode(userID int) (Authorization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	auth, ok := s.authorizationCodes[userID]
	return auth, ok
}

// AddAccessToken mints a fresh 64-character access token for the
// user, bound to the given scope string. Any previous token for the
// user is overwritten and becomes unresolvable.
func (s *Store) AddAccessToken(userID int, scope string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccessTokenLocked(userID, scope)
}

func (s *Store) addAccessTokenLocked(userID int, scope string) Token {
	token := Token{
		AccessToken: randstr.String(accessTokenLength),
		Scope:       scope,
	}
	s.accessTokens[userID] = token
	return token
}

// AccessToken returns the stored access token record for the user, if any.
func (s *Store) AccessToken(userID int) (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.accessTokens[userID]
	return token, ok
}

// UserIDForToken resolves an access token string to the owning user
// id by scanning the issued tokens. The data set is test-scale, so a
// linear scan is fine.
func (s *Store) UserIDForToken(accessToken string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for userID, token := range s.accessTokens {
		if token.AccessToken == accessToken {
			return userID, true
		}
	}
	return 0, false
}

// MintTokensForAuthenticatedUsers issues an access token for every
// authenticated user that does not have one yet, scoped to the
// scopes that user granted.
func (s *Store) MintTokensForAuthenticatedUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.authenticated {
		if _, ok := s.accessTokens[user.ID]; !ok {
			s.addAccessTokenLocked(user.ID, scopes.Join(user.DidPermitScopes))
		}
	}
}

func findUser(users []User, id int) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u.clone(), true
		}
	}
	return User{}, false
}

func copyUsers(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.clone()
	}
	return out
}
