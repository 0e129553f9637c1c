package domain

import "time"

// Session is a refresh token session for a logged-in user.
// The refresh token itself is never stored, only its hash.
type Session struct {
	Entity
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
