// Package mymlhmock is an in-memory test double for the MyMLH
// OAuth2/identity API. It lets applications exercise the
// authorization code and implicit flows plus the profile endpoint
// without network access to my.mlh.io: requests are served by
// in-process handlers over a session store that keeps clients, users,
// authorization codes, and access tokens consistent across the steps
// of a flow.
//
// Typical test usage:
//
//	mock, err := mymlhmock.New(mymlhmock.Config{
//		ClientID:     "client_id",
//		ClientSecret: "client_secret",
//		CallbackURLs: []string{"https://app.test/auth/callback"},
//	})
//	...
//	httpClient := mock.Client() // routes my.mlh.io to the mock
package mymlhmock

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/intercept"
	"github.com/hackry/mymlhmock/internal/provider"
	"github.com/hackry/mymlhmock/internal/store"
)

// Host is the hostname the mock intercepts.
const Host = "my.mlh.io"

var (
	// ErrMissingClientID is returned by New when Config.ClientID is empty.
	ErrMissingClientID = errors.New("MyMLH client id is required")

	// ErrMissingClientSecret is returned by New when Config.ClientSecret is empty.
	ErrMissingClientSecret = errors.New("MyMLH client secret is required")

	// ErrMissingCallbackURLs is returned by New when no callback URLs
	// are configured.
	ErrMissingCallbackURLs = errors.New("at least one callback URL is required")
)

// User re-exports the store's user record for configuration.
type User = store.User

// School re-exports the nested school record.
type School = store.School

// Config describes one mock provider instance.
type Config struct {
	// ClientID and ClientSecret are the OAuth client credentials the
	// mock will accept. Both are required.
	ClientID     string
	ClientSecret string

	// CallbackURLs are the registered redirect URL prefixes. At least
	// one is required.
	CallbackURLs []string

	// AuthenticatedUsers and UnauthenticatedUsers are merged with the
	// built-in fixture users. Ids must be unique and >= 100.
	AuthenticatedUsers   []User
	UnauthenticatedUsers []User

	// Logger receives debug logs from the protocol handlers. Nil
	// disables logging.
	Logger *zap.Logger
}

// AuthenticatedUser is the assertion-friendly view of an
// authenticated user: its id and the access token minted for it.
type AuthenticatedUser struct {
	ID          int
	AccessToken string
}

// UnauthenticatedUser is the assertion-friendly view of an
// unauthenticated user.
type UnauthenticatedUser struct {
	ID int
}

// Mock is one running mock provider instance.
type Mock struct {
	cfg     Config
	store   *store.Store
	handler http.Handler
}

// New builds a mock provider from cfg: it validates the client
// credentials and callback URLs, merges the configured users with the
// built-in fixtures, and mints access tokens for every authenticated
// user so profile requests work without running a flow first.
func New(cfg Config) (*Mock, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	if len(cfg.CallbackURLs) == 0 {
		return nil, ErrMissingCallbackURLs
	}

	m := &Mock{
		cfg:   cfg,
		store: store.New(),
	}
	if err := m.apply(); err != nil {
		return nil, err
	}

	m.handler = provider.New(m.store, cfg.Logger).Routes()
	return m, nil
}

// apply seeds the store with the instance configuration.
func (m *Mock) apply() error {
	m.store.SetClient(store.Client{ID: m.cfg.ClientID, Secret: m.cfg.ClientSecret})
	m.store.SetCallbackURLs(m.cfg.CallbackURLs)

	for _, u := range m.cfg.AuthenticatedUsers {
		if err := m.store.AddAuthenticatedUser(u); err != nil {
			return err
		}
	}
	for _, u := range m.cfg.UnauthenticatedUsers {
		if err := m.store.AddUnauthenticatedUser(u); err != nil {
			return err
		}
	}

	m.store.MintTokensForAuthenticatedUsers()
	return nil
}

// Reset restores the instance to its initial state: the session store
// snapshot is restored and the instance configuration re-applied.
// Issued authorization codes disappear; access tokens for
// authenticated users are re-minted with fresh values. Intended for
// use between test cases.
func (m *Mock) Reset() {
	m.store.Reset()
	// The config was validated by New; re-applying it cannot fail.
	_ = m.apply()
}

// Handler returns the mock API as an http.Handler, for callers that
// want to mount it on a listener themselves.
func (m *Mock) Handler() http.Handler {
	return m.handler
}

// Transport returns an http.RoundTripper that serves requests for
// my.mlh.io from this mock and forwards everything else to next (or
// http.DefaultTransport when next is nil).
func (m *Mock) Transport(next http.RoundTripper) http.RoundTripper {
	return intercept.NewTransport(m.handler, []string{Host}, next)
}

// Client returns an http.Client whose transport intercepts my.mlh.io
// and which does not follow redirects, so authorize responses can be
// inspected directly.
func (m *Mock) Client() *http.Client {
	return &http.Client{
		Transport: m.Transport(nil),
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Store exposes the underlying session store for advanced test
// orchestration.
func (m *Mock) Store() *store.Store {
	return m.store
}

// CurrentUserID returns the id of the simulated logged-in user.
func (m *Mock) CurrentUserID() int {
	return m.store.CurrentUserID()
}

// SetCurrentUserID switches the simulated logged-in user. The id must
// belong to an unauthenticated user.
func (m *Mock) SetCurrentUserID(id int) error {
	return m.store.SetCurrentUserID(id)
}

// AuthenticatedUsers returns {id, access token} tuples for every
// authenticated user, for test assertions.
func (m *Mock) AuthenticatedUsers() []AuthenticatedUser {
	users := m.store.AuthenticatedUsers()
	out := make([]AuthenticatedUser, 0, len(users))
	for _, u := range users {
		token, _ := m.store.AccessToken(u.ID)
		out = append(out, AuthenticatedUser{ID: u.ID, AccessToken: token.AccessToken})
	}
	return out
}

// UnauthenticatedUsers returns {id} tuples for every unauthenticated
// user, for test assertions.
func (m *Mock) UnauthenticatedUsers() []UnauthenticatedUser {
	users := m.store.UnauthenticatedUsers()
	out := make([]UnauthenticatedUser, 0, len(users))
	for _, u := range users {
		out = append(out, UnauthenticatedUser{ID: u.ID})
	}
	return out
}
