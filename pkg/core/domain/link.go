package domain

import "time"

// Link represents a shortened URL record, keyed by its short code.
type Link struct {
	ShortCode    string     `json:"short_code"`
	LongURL      string     `json:"long_url"`
	UserID       string     `json:"user_id,omitempty"`
	Clicks       int64      `json:"clicks"`
	CreatedAt    time.Time  `json:"created_at"`
	PasswordHash string     `json:"password_hash,omitempty"`
	IsProtected  bool       `json:"is_protected"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the link has passed its expiry at the given time.
// Links without an expiry never expire.
func (l *Link) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Clone creates a deep copy of the link.
func (l *Link) Clone() *Link {
	c := *l
	if l.ExpiresAt != nil {
		t := *l.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
