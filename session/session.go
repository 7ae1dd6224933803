package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the persisted authentication state. Either field may be
// empty when the user has never logged in or has logged out.
type Session struct {
	Token    string
	UserName string
}

// Load reads the session from the store. Absent keys are not errors.
func Load(ctx context.Context, store Store) (Session, error) {
	var s Session
	token, err := store.Get(ctx, KeyToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	s.Token = token
	name, err := store.Get(ctx, KeyUserName)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	s.UserName = name
	return s, nil
}

// Clear removes the credentials and token. Used by logout; the client
// id and theme preference survive.
func Clear(ctx context.Context, store Store) error {
	for _, key := range []string{KeyToken, KeyPassword, KeyUserName} {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// TokenClaims is what the client can read out of the stored bearer
// token without the signing key. The token is never validated here;
// the backend does that on every call. This is only used to show the
// user name and to skip obviously expired sessions.
type TokenClaims struct {
	UserName  string
	ExpiresAt time.Time
}

// claim name candidates across backend versions
var userNameClaims = []string{"userName", "username", "unique_name", "sub", "email"}

// InspectToken parses the JWT without verifying its signature.
func InspectToken(token string) (TokenClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, err
	}
	var tc TokenClaims
	for _, name := range userNameClaims {
		if s, ok := claims[name].(string); ok && s != "" {
			tc.UserName = s
			break
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tc.ExpiresAt = exp.Time
	}
	return tc, nil
}

// Expired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim never report expired.
func (tc TokenClaims) Expired(now time.Time) bool {
	return !tc.ExpiresAt.IsZero() && tc.ExpiresAt.Before(now)
}
