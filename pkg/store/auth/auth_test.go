package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/blogfront/pkg/model"
)

func reduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestLoginLifecycle(t *testing.T) {
	s := Reduce(State{Error: "old"}, LoginPending{})
	assert.True(t, s.IsLoading)
	assert.Empty(t, s.Error)
	assert.Equal(t, Authenticating, PhaseOf(s))

	s = Reduce(s, LoginFulfilled{Access: "a", Refresh: "r"})
	assert.False(t, s.IsLoading)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "a", s.AccessToken)
	assert.Equal(t, "r", s.RefreshToken)
	assert.Equal(t, Authenticated, PhaseOf(s))
}

func TestLoginRejected(t *testing.T) {
	s := reduceAll(State{}, LoginPending{}, LoginRejected{Err: "Invalid email or password"})
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsAuthenticated)
	assert.Equal(t, "Invalid email or password", s.Error)
	assert.Equal(t, AuthFailed, PhaseOf(s))
}

func TestVerifyRejectedDropsTokens(t *testing.T) {
	s := reduceAll(State{},
		Hydrate{AccessToken: "a", RefreshToken: "r"},
		VerifyPending{},
		VerifyRejected{Err: "Token is invalid or expired"},
	)
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.IsLoading)
}

func TestRefreshLifecycle(t *testing.T) {
	s := reduceAll(State{}, Hydrate{AccessToken: "old", RefreshToken: "r"}, RefreshPending{})
	assert.Equal(t, Reauthenticating, PhaseOf(s))

	ok := Reduce(s, RefreshFulfilled{Access: "new"})
	assert.Equal(t, "new", ok.AccessToken)
	assert.Equal(t, "r", ok.RefreshToken)
	assert.True(t, ok.IsAuthenticated)
	assert.Equal(t, Authenticated, PhaseOf(ok))

	failed := Reduce(s, RefreshRejected{Err: "Token is blacklisted"})
	assert.Empty(t, failed.AccessToken)
	assert.Empty(t, failed.RefreshToken)
	assert.False(t, failed.Refreshing)
	assert.Equal(t, AuthFailed, PhaseOf(failed))
}

func TestRefreshRestoresDroppedToken(t *testing.T) {
	s := reduceAll(State{},
		Hydrate{AccessToken: "old", RefreshToken: "r"},
		VerifyRejected{Err: "Token is invalid or expired"},
	)
	require.Empty(t, s.RefreshToken)

	s = reduceAll(s, RefreshPending{}, RefreshFulfilled{Access: "new", Refresh: "r"})
	assert.Equal(t, "new", s.AccessToken)
	assert.Equal(t, "r", s.RefreshToken)
	assert.True(t, s.IsAuthenticated)
}

func TestActivateOutcomes(t *testing.T) {
	s := Reduce(State{}, ActivatePending{})
	assert.Equal(t, ActivationPending, s.Activation)

	assert.Equal(t, ActivationActivated, Reduce(s, ActivateFulfilled{}).Activation)

	expired := Reduce(s, ActivateRejected{Err: "Stale token for given user.", Expired: true})
	assert.Equal(t, ActivationExpired, expired.Activation)
	assert.Equal(t, "Stale token for given user.", expired.Error)

	failed := Reduce(s, ActivateRejected{Err: "Invalid activation link"})
	assert.Equal(t, ActivationFailed, failed.Activation)
}

func TestRegisterLifecycle(t *testing.T) {
	s := reduceAll(State{}, RegisterPending{}, RegisterFulfilled{})
	assert.True(t, s.Registered)
	assert.False(t, s.IsAuthenticated)

	s = reduceAll(State{}, RegisterPending{}, RegisterRejected{Err: "email: taken"})
	assert.False(t, s.Registered)
	assert.Equal(t, "email: taken", s.Error)
}

func TestProfileAndLogout(t *testing.T) {
	user := model.User{ID: 1, Username: "ann"}
	s := reduceAll(State{}, LoginFulfilled{Access: "a", Refresh: "r"}, ProfilePending{}, ProfileFulfilled{User: user})
	require.NotNil(t, s.User)
	assert.Equal(t, "ann", s.User.Username)

	s = Reduce(s, Logout{ShowNotification: true})
	assert.Equal(t, State{}, s)
	assert.Equal(t, Anonymous, PhaseOf(s))
}

func TestProfileRejectedKeepsSession(t *testing.T) {
	s := reduceAll(State{}, LoginFulfilled{Access: "a", Refresh: "r"}, ProfilePending{}, ProfileRejected{Err: "boom"})
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "a", s.AccessToken)
	assert.Nil(t, s.User)
}

func TestClearErrorAndSetUser(t *testing.T) {
	s := Reduce(State{Error: "x"}, ClearError{})
	assert.Empty(t, s.Error)

	s = Reduce(s, SetUser{User: model.User{ID: 9}})
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, 9, s.User.ID)
}

func TestReduceDoesNotShareUser(t *testing.T) {
	user := model.User{ID: 1, Username: "ann"}
	a := Reduce(State{}, SetUser{User: user})
	b := Reduce(a, SetUser{User: model.User{ID: 2}})
	assert.Equal(t, 1, a.User.ID)
	assert.Equal(t, 2, b.User.ID)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	now := time.Now()

	live := signed(t, now.Add(time.Hour))
	exp, ok := TokenExpiry(live)
	require.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)
	assert.False(t, TokenExpired(live, now))

	dead := signed(t, now.Add(-time.Minute))
	assert.True(t, TokenExpired(dead, now))

	assert.False(t, TokenExpired("not-a-jwt", now))
	assert.False(t, TokenExpired("", now))
}

func TestPredicates(t *testing.T) {
	s := State{AccessToken: "a"}
	assert.True(t, HasStoredSession(s))
	assert.False(t, CanRefresh(s))
	assert.False(t, IsAuthenticated(s))
}
