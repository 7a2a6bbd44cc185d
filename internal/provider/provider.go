// Package provider implements the mock MyMLH HTTP endpoints: the
// OAuth authorize and token endpoints and the user profile endpoint.
// Handlers are plain synchronous functions over the session store;
// how requests reach them (interception transport or a real listener)
// is the caller's concern.
package provider

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/store"
)

// Provider serves the mock MyMLH API against one session store.
type Provider struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New returns a Provider over the given store. A nil logger disables
// logging.
func New(st *store.Store, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Routes returns the handler serving the mock API surface. The
// profile endpoint is reachable both at its documented versioned path
// and at the bare path.
func (p *Provider) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/oauth/authorize", p.handleAuthorize)
	r.Post("/oauth/token", p.handleToken)
	r.Get("/user.json", p.handleUser)
	r.Get("/api/v2/user.json", p.handleUser)
	return r
}
