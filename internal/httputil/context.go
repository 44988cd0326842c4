package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	tokenKey  contextKey = "accessToken"
)

// WithIdentity attaches the authenticated user id and access token to the
// request context. An empty userID marks an anonymous request.
func WithIdentity(r *http.Request, userID, accessToken string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, tokenKey, accessToken)
	return r.WithContext(ctx)
}

// GetUserID returns the authenticated user id, empty for anonymous
// requests.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetAccessToken returns the raw bearer token the request carried.
func GetAccessToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
