package provider

// Error strings reproduced verbatim from the upstream MyMLH API.
const (
	msgUnsupportedResponseType = "The authorization server does not support this response type."
	msgUnknownClient           = "Client authentication failed due to unknown client, no client authentication included, or unsupported authentication method."
	msgInvalidRedirectURI      = "The redirect uri included is not valid."
	msgInvalidAccessToken      = "A valid access_token is required to request this resource."

	descUnsupportedGrantType = "The authorization grant type is not supported by the authorization server."
	descInvalidRequest       = "The request is missing a required parameter, includes an unsupported parameter value, or is otherwise malformed."
	descInvalidGrant         = "The provided authorization grant is invalid, expired, revoked, does not match the redirection URI used in the authorization request, or was issued to another client."
)

// TokenResponse is the successful token exchange payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	CreatedAt   string `json:"created_at"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

// TokenError is the token endpoint's error payload.
type TokenError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ProfileResponse is the successful profile payload: the base fields
// plus whatever fields the token's scopes unlock.
type ProfileResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// ProfileError is the profile endpoint's error payload.
type ProfileError struct {
	Status string             `json:"status"`
	Error  ProfileErrorDetail `json:"error"`
}

// ProfileErrorDetail carries the error code and message inside a
// ProfileError.
type ProfileErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
