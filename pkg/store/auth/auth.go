// Package auth holds the signed-in session: tokens, profile and the state of
// the login, verify, refresh, register, activate and profile lifecycles.
package auth

import "github.com/zfogg/blogfront/pkg/model"

// Activation tracks the one-shot account activation flow.
type Activation string

const (
	ActivationNone      Activation = ""
	ActivationPending   Activation = "pending"
	ActivationActivated Activation = "activated"
	// ActivationExpired means the link was already used or is too old; the
	// user has to register again rather than retry.
	ActivationExpired Activation = "expired"
	ActivationFailed  Activation = "failed"
)

// State is the auth slice.
type State struct {
	User            *model.User
	IsAuthenticated bool
	AccessToken     string
	RefreshToken    string
	IsLoading       bool
	Refreshing      bool
	Error           string
	Activation      Activation
	Registered      bool
}

// Action is implemented by every auth action.
type Action interface {
	Type() string
	authAction()
}

type (
	// Hydrate restores persisted tokens at startup.
	Hydrate struct{ AccessToken, RefreshToken string }

	LoginPending   struct{}
	LoginFulfilled struct{ Access, Refresh string }
	LoginRejected  struct{ Err string }

	VerifyPending   struct{}
	VerifyFulfilled struct{ Token string }
	VerifyRejected  struct{ Err string }

	// RefreshFulfilled.Refresh is set when the refresh token must be
	// restored, as after a failed verification dropped it.
	RefreshPending   struct{}
	RefreshFulfilled struct{ Access, Refresh string }
	RefreshRejected  struct{ Err string }

	RegisterPending   struct{}
	RegisterFulfilled struct{}
	RegisterRejected  struct{ Err string }

	ActivatePending   struct{}
	ActivateFulfilled struct{}
	ActivateRejected  struct {
		Err     string
		Expired bool
	}

	ProfilePending   struct{}
	ProfileFulfilled struct{ User model.User }
	ProfileRejected  struct{ Err string }

	// Logout clears the session. Showing a notification is left to the
	// caller; the flag is carried for it to read.
	Logout     struct{ ShowNotification bool }
	ClearError struct{}
	SetUser    struct{ User model.User }
)

func (Hydrate) Type() string           { return "auth/hydrate" }
func (LoginPending) Type() string      { return "auth/login/pending" }
func (LoginFulfilled) Type() string    { return "auth/login/fulfilled" }
func (LoginRejected) Type() string     { return "auth/login/rejected" }
func (VerifyPending) Type() string     { return "auth/verifyToken/pending" }
func (VerifyFulfilled) Type() string   { return "auth/verifyToken/fulfilled" }
func (VerifyRejected) Type() string    { return "auth/verifyToken/rejected" }
func (RefreshPending) Type() string    { return "auth/refreshToken/pending" }
func (RefreshFulfilled) Type() string  { return "auth/refreshToken/fulfilled" }
func (RefreshRejected) Type() string   { return "auth/refreshToken/rejected" }
func (RegisterPending) Type() string   { return "auth/register/pending" }
func (RegisterFulfilled) Type() string { return "auth/register/fulfilled" }
func (RegisterRejected) Type() string  { return "auth/register/rejected" }
func (ActivatePending) Type() string   { return "auth/activate/pending" }
func (ActivateFulfilled) Type() string { return "auth/activate/fulfilled" }
func (ActivateRejected) Type() string  { return "auth/activate/rejected" }
func (ProfilePending) Type() string    { return "auth/fetchProfile/pending" }
func (ProfileFulfilled) Type() string  { return "auth/fetchProfile/fulfilled" }
func (ProfileRejected) Type() string   { return "auth/fetchProfile/rejected" }
func (Logout) Type() string            { return "auth/logout" }
func (ClearError) Type() string        { return "auth/clearError" }
func (SetUser) Type() string           { return "auth/setUser" }

func (Hydrate) authAction()           {}
func (LoginPending) authAction()      {}
func (LoginFulfilled) authAction()    {}
func (LoginRejected) authAction()     {}
func (VerifyPending) authAction()     {}
func (VerifyFulfilled) authAction()   {}
func (VerifyRejected) authAction()    {}
func (RefreshPending) authAction()    {}
func (RefreshFulfilled) authAction()  {}
func (RefreshRejected) authAction()   {}
func (RegisterPending) authAction()   {}
func (RegisterFulfilled) authAction() {}
func (RegisterRejected) authAction()  {}
func (ActivatePending) authAction()   {}
func (ActivateFulfilled) authAction() {}
func (ActivateRejected) authAction()  {}
func (ProfilePending) authAction()    {}
func (ProfileFulfilled) authAction()  {}
func (ProfileRejected) authAction()   {}
func (Logout) authAction()            {}
func (ClearError) authAction()        {}
func (SetUser) authAction()           {}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Hydrate:
		s.AccessToken = a.AccessToken
		s.RefreshToken = a.RefreshToken

	case LoginPending:
		s.IsLoading = true
		s.Error = ""
	case LoginFulfilled:
		s.IsLoading = false
		s.IsAuthenticated = true
		s.AccessToken = a.Access
		s.RefreshToken = a.Refresh
		s.Error = ""
	case LoginRejected:
		s.IsLoading = false
		s.IsAuthenticated = false
		s.Error = a.Err

	case VerifyPending:
		s.IsLoading = true
	case VerifyFulfilled:
		s.IsLoading = false
		s.IsAuthenticated = true
		if a.Token != "" {
			s.AccessToken = a.Token
		}
	case VerifyRejected:
		s = dropSession(s, a.Err)

	case RefreshPending:
		s.IsLoading = true
		s.Refreshing = true
	case RefreshFulfilled:
		s.IsLoading = false
		s.Refreshing = false
		s.AccessToken = a.Access
		if a.Refresh != "" {
			s.RefreshToken = a.Refresh
		}
		s.IsAuthenticated = true
	case RefreshRejected:
		s = dropSession(s, a.Err)

	case RegisterPending:
		s.IsLoading = true
		s.Error = ""
		s.Registered = false
	case RegisterFulfilled:
		s.IsLoading = false
		s.Error = ""
		s.Registered = true
	case RegisterRejected:
		s.IsLoading = false
		s.Error = a.Err

	case ActivatePending:
		s.IsLoading = true
		s.Error = ""
		s.Activation = ActivationPending
	case ActivateFulfilled:
		s.IsLoading = false
		s.Error = ""
		s.Activation = ActivationActivated
	case ActivateRejected:
		s.IsLoading = false
		s.Error = a.Err
		if a.Expired {
			s.Activation = ActivationExpired
		} else {
			s.Activation = ActivationFailed
		}

	case ProfilePending:
		s.IsLoading = true
		s.Error = ""
	case ProfileFulfilled:
		user := a.User
		s.IsLoading = false
		s.User = &user
		s.IsAuthenticated = true
		s.Error = ""
	case ProfileRejected:
		s.IsLoading = false
		s.Error = a.Err

	case Logout:
		s.User = nil
		s.IsAuthenticated = false
		s.AccessToken = ""
		s.RefreshToken = ""
		s.Refreshing = false
		s.Error = ""
	case ClearError:
		s.Error = ""
	case SetUser:
		user := a.User
		s.User = &user
		s.IsAuthenticated = true
	}
	return s
}

func dropSession(s State, err string) State {
	s.IsLoading = false
	s.Refreshing = false
	s.IsAuthenticated = false
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Error = err
	return s
}
