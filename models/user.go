package models

import "time"

// User is an account of the remote record service. Every record belongs to
// exactly one user, which gives each user a private namespace.
type User struct {
	UserID int64  `json:"-"`
	Login  string `json:"login"`

	// Password is the plaintext password. It only travels in register/login
	// request bodies and is never stored.
	Password string `json:"password,omitempty"`

	// PasswordHash is the encoded argon2id hash stored by the server.
	PasswordHash string `json:"-"`

	// Restricted marks an account that may authenticate but must not sync.
	Restricted bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
