package dto

// LoginRequest is the JSON body for POST /token.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /users.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
}

// RefreshRequest is the JSON body for POST /token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// VerifyRequest is the JSON body for POST /token/verify.
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// TokenPairResponse is returned on login and registration.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse is returned on refresh.
type AccessTokenResponse struct {
	Access string `json:"access"`
}

// VerifyResponse is returned on successful token introspection.
type VerifyResponse struct {
	Username string `json:"username"`
}
