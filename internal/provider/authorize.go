package provider

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/scopes"
)

// handleAuthorize implements GET /oauth/authorize for both the
// authorization code flow (response_type=code) and the implicit flow
// (response_type=token). Validation failures answer HTTP 200 with a
// plain-text message; the real provider does not use 4xx here.
func (p *Provider) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	responseType := query.Get("response_type")
	clientID := query.Get("client_id")
	redirectURI := query.Get("redirect_uri")

	if responseType != "code" && responseType != "token" {
		p.authorizeError(w, msgUnsupportedResponseType)
		return
	}
	if clientID != p.store.GetClient().ID {
		p.authorizeError(w, msgUnknownClient)
		return
	}
	if redirectURI == "" || !p.store.IsValidRedirectURL(redirectURI) {
		p.authorizeError(w, msgInvalidRedirectURI)
		return
	}

	currentUserID := p.store.CurrentUserID()
	user, ok := p.store.UserByID(currentUserID)
	if !ok {
		// The store guarantees the pointer resolves; this is a bug guard.
		http.Error(w, "current user not found", http.StatusInternalServerError)
		return
	}

	permittedScope := scopes.Join(scopes.Match(query.Get("scope"), user.WillPermitScopes))

	if responseType == "token" {
		token := p.store.AddAccessToken(currentUserID, permittedScope)
		p.logger.Debug("implicit flow granted",
			zap.Int("user_id", currentUserID),
			zap.String("scope", permittedScope))
		p.authorizeRedirect(w, redirectURI, "access_token", token.AccessToken)
		return
	}

	auth := p.store.AddAuthorizationCode(currentUserID, redirectURI, permittedScope)
	p.logger.Debug("authorization code issued",
		zap.Int("user_id", currentUserID),
		zap.String("scope", permittedScope))
	p.authorizeRedirect(w, redirectURI, "code", auth.Code)
}

func (p *Provider) authorizeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(message))
}

// authorizeRedirect answers 302 to redirectURI with param appended,
// merging with any query parameters already on the redirect URI.
func (p *Provider) authorizeRedirect(w http.ResponseWriter, redirectURI, param, value string) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		// Unparseable URIs never pass redirect validation.
		http.Error(w, "invalid redirect_uri", http.StatusInternalServerError)
		return
	}

	q := u.Query()
	q.Set(param, value)
	u.RawQuery = q.Encode()

	w.Header().Set("Location", u.String())
	w.WriteHeader(http.StatusFound)
}
