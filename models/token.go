package models

import "time"

// Token is a session token: issued on register/login, parsed on every
// authenticated request.
type Token struct {
	// SignedString is the compact JWS sent as "Authorization: Bearer ...".
	SignedString string `json:"-"`

	// UserID is the token subject.
	UserID int64 `json:"-"`

	ExpiresAt time.Time `json:"-"`
}

func (t Token) String() string {
	return t.SignedString
}
