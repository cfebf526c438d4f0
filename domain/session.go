package domain

import "time"

// Session is an authenticated user's server-side session, cached in Redis
// with a sliding expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Extend pushes the expiry ttl into the future from now.
func (s *Session) Extend(ttl time.Duration) {
	if s == nil {
		return
	}
	s.ExpiresAt = time.Now().Add(ttl)
}
