package models

// Session is the locally persisted login of the sync client.
type Session struct {
	Login string `json:"login"`
	Token string `json:"token"`
}

// Empty reports whether the session carries no token.
func (s Session) Empty() bool {
	return s.Token == ""
}
