package domain

import "strings"

// ShareResult is the body POST /brain/share returns when sharing is enabled.
type ShareResult struct {
	Message string `json:"message"`
	Hash    string `json:"hash"`
}

// ShareRequest toggles public sharing of the caller's collection.
type ShareRequest struct {
	Share bool `json:"share"`
}

// ShareLink builds the public URL for a share handle.
func ShareLink(origin, hash string) string {
	return strings.TrimRight(origin, "/") + "/share/" + hash
}

// Credentials is the body of POST /signup and POST /signin.
type Credentials struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// SigninResult is the body of POST /signin.
type SigninResult struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResult is a bare acknowledgement carrying a message.
type MessageResult struct {
	Message string `json:"message"`
}
