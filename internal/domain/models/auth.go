package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated identity for the current viewer. Absent (nil)
// for anonymous visitors. Its presence is the sole gate for folder-scoped
// operations.
type Session struct {
	AccessToken string `json:"-"`
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// SupabaseClaims is the JWT claims structure issued by Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	Role         string                 `json:"role"` // "authenticated" or "anon"
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// GetUserID returns the user id from the subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// metadataString pulls an optional string out of the user metadata map.
func (c *SupabaseClaims) metadataString(key string) string {
	if c.UserMetadata == nil {
		return ""
	}
	s, _ := c.UserMetadata[key].(string)
	return s
}

// Session builds a Session from verified claims and the raw token.
func (c *SupabaseClaims) Session(accessToken string) *Session {
	return &Session{
		AccessToken: accessToken,
		UserID:      c.Subject,
		Email:       c.Email,
		Name:        c.metadataString("full_name"),
		AvatarURL:   c.metadataString("avatar_url"),
	}
}
