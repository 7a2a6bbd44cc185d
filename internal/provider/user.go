package provider

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hackry/mymlhmock/internal/scopes"
)

// handleUser implements GET /user.json: resolve the access token to
// its owner and answer the profile filtered down to the token's
// scopes.
func (p *Provider) handleUser(w http.ResponseWriter, r *http.Request) {
	accessToken := r.URL.Query().Get("access_token")

	userID, ok := p.store.UserIDForToken(accessToken)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(ProfileError{
			Status: "error",
			Error: ProfileErrorDetail{
				Code:    http.StatusUnauthorized,
				Message: msgInvalidAccessToken,
			},
		})
		return
	}

	token, _ := p.store.AccessToken(userID)
	user, ok := p.store.UserByID(userID)
	if !ok {
		http.Error(w, "token owner not found", http.StatusInternalServerError)
		return
	}

	p.logger.Debug("profile served",
		zap.Int("user_id", userID),
		zap.String("scope", token.Scope))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ProfileResponse{
		Status: "OK",
		Data:   scopes.Apply(scopes.Split(token.Scope), user.Fields()),
	})
}
