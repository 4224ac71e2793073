package dto

import "time"

// ErrorRes is the generic error response body.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is the generic success response body.
type MessageRes struct {
	Message string `json:"message"`
}

// AuthRes is returned whenever a session is established. SessionToken is the
// persistent "remember me" token; AccessToken is the short-lived JWT.
type AuthRes struct {
	Nickname     string `json:"nickname"`
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
}

// CheckedEmailRes is returned after a successful email confirmation.
type CheckedEmailRes struct {
	Nickname      string `json:"nickname"`
	NumberOfUsers int64  `json:"number_of_users"`
	AccessToken   string `json:"access_token"`
	SessionToken  string `json:"session_token"`
}

// ProfileRes is the public view of an account.
type ProfileRes struct {
	Nickname      string    `json:"nickname"`
	Bio           string    `json:"bio,omitempty"`
	URL           string    `json:"url,omitempty"`
	Occupation    string    `json:"occupation,omitempty"`
	Location      string    `json:"location,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	JoinedAt      time.Time `json:"joined_at,omitzero"`
}
