package client

import "context"

type contextKey string

const accessTokenKey contextKey = "access-token"

// WithAccessToken makes requests under ctx carry token instead of the stored
// access token. Such requests never enter the refresh-and-retry path, so a
// candidate token can be tried before anything is persisted.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

func accessTokenOverride(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok
}
