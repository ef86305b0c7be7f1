// Package session stores the client's session data (access token, user name)
// in a local key/value table so it stays retrievable for the lifetime of the
// client.
package session

import "context"

// Well-known keys.
const (
	KeyAccessToken = "access_token"
	KeyUsername    = "username"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context) error
}
