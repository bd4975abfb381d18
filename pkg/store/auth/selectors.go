package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Phase is the coarse session state the views branch on.
type Phase string

const (
	Anonymous        Phase = "anonymous"
	Authenticating   Phase = "authenticating"
	Authenticated    Phase = "authenticated"
	AuthFailed       Phase = "failed"
	Reauthenticating Phase = "reauthenticating"
)

// PhaseOf derives the session phase from the slice flags.
func PhaseOf(s State) Phase {
	switch {
	case s.Refreshing:
		return Reauthenticating
	case s.IsAuthenticated:
		return Authenticated
	case s.IsLoading:
		return Authenticating
	case s.Error != "":
		return AuthFailed
	default:
		return Anonymous
	}
}

func IsAuthenticated(s State) bool { return s.IsAuthenticated }

func HasStoredSession(s State) bool { return s.AccessToken != "" }

func CanRefresh(s State) bool { return s.RefreshToken != "" }

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The server remains the authority; this only decides when to refresh.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether token carries an exp claim at or before now.
// Tokens without a readable exp are treated as live.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	return ok && !now.Before(exp)
}
