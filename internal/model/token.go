package model

// TokenRequest is the payload accepted by POST /api/auth/token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate rejects a payload missing either credential.
func (r *TokenRequest) Validate() error {
	return FormatValidationError(GetValidator().Struct(r))
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
