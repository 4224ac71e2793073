// Package dto defines data transfer objects for the account feature's HTTP
// transport layer.
package dto

// SignUpReq represents the request body for the /signup endpoint.
// It uses Gin's binding tags for validation (required fields, email format,
// nickname and password length).
type SignUpReq struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=8,max=50"`
}

// LoginReq represents the request body for the /login endpoint.
// Username is either the email address or the nickname.
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailLoginReq represents the request body for the /email-login endpoint.
type EmailLoginReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionReq carries the persistent session token for /refresh and /logout.
type SessionReq struct {
	SessionToken string `json:"session_token" binding:"required"`
}
