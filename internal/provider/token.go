package provider

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// handleToken implements POST /oauth/token (authorization_code grant
// only). Parameters are read from the form body or the query string;
// the upstream API accepts both. The validation order is part of the
// contract: grant_type, then redirect_uri presence, then client
// credentials, then the code/redirect match, each failure answering
// 401 with a single JSON error.
func (p *Provider) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		p.tokenError(w, "invalid_request", descInvalidRequest)
		return
	}

	// grant_type correctness is checked first even when other
	// parameters are missing.
	if r.Form.Get("grant_type") != "authorization_code" {
		p.tokenError(w, "unsupported_grant_type", descUnsupportedGrantType)
		return
	}

	redirectURI := r.Form.Get("redirect_uri")
	if redirectURI == "" {
		p.tokenError(w, "invalid_request", descInvalidRequest)
		return
	}

	client := p.store.GetClient()
	if r.Form.Get("client_id") != client.ID || r.Form.Get("client_secret") != client.Secret {
		p.tokenError(w, "invalid_client", msgUnknownClient)
		return
	}

	currentUserID := p.store.CurrentUserID()
	auth, ok := p.store.AuthorizationCode(currentUserID)
	if !ok || r.Form.Get("code") != auth.Code || redirectURI != auth.RedirectURL {
		p.tokenError(w, "invalid_grant", descInvalidGrant)
		return
	}

	token := p.store.AddAccessToken(currentUserID, auth.Scope)
	p.logger.Debug("authorization code exchanged",
		zap.Int("user_id", currentUserID),
		zap.String("scope", auth.Scope))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(TokenResponse{
		AccessToken: token.AccessToken,
		CreatedAt:   p.now().UTC().Format(time.RFC3339),
		Scope:       auth.Scope,
		TokenType:   "bearer",
	})
}

func (p *Provider) tokenError(w http.ResponseWriter, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(TokenError{
		Error:            code,
		ErrorDescription: description,
	})
}
