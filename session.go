package assets

import "time"

// Session is the authenticated-identity context for the current
// actor. It is an explicit value threaded through every gated call,
// never ambient process state and never persisted. A zero Session is
// unauthenticated and denied every action.
type Session struct {
	Username      string     `json:"username,omitempty"`
	Role          Role       `json:"role,omitempty"`
	Authenticated bool       `json:"authenticated,omitempty"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
}

// NewSession builds an authenticated session for the given user. The
// stored role is normalized here, once; every later comparison is
// against the lowercase form.
func NewSession(user *User) *Session {
	if user == nil {
		return &Session{}
	}

	now := time.Now()
	return &Session{
		Username:      user.Username,
		Role:          NormalizeRole(user.Role),
		Authenticated: true,
		IssuedAt:      &now,
	}
}

// Logout clears the session in place. The value can be reused as an
// unauthenticated session afterwards.
func (s *Session) Logout() {
	if s == nil {
		return
	}
	s.Username = ""
	s.Role = ""
	s.Authenticated = false
	s.IssuedAt = nil
}

// IsAuthenticated reports whether the session came from a successful
// login and has not been logged out.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated
}

// HasRole checks the session role against a normalized role value.
func (s *Session) HasRole(role Role) bool {
	if !s.IsAuthenticated() {
		return false
	}
	return s.Role == NormalizeRole(role)
}
