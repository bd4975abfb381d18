package service

import (
	"context"
	stderrors "errors"

	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/async"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/logger"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/auth"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

// AuthService runs the session lifecycles.
type AuthService struct {
	*base
}

// NewAuthService creates a new auth service
func NewAuthService(opts Options) *AuthService {
	return &AuthService{base: newBase(opts)}
}

// Login exchanges credentials for tokens, then fetches the profile. A failed
// profile fetch does not undo the login.
func (s *AuthService) Login(ctx context.Context, email, password string) *async.Task[*api.TokenPair] {
	login := run(s.base, ctx, lifecycle[*api.TokenPair]{
		op:      "auth/login",
		pending: actions(auth.LoginPending{}),
		call: func(ctx context.Context) (*api.TokenPair, error) {
			return s.api.Login(ctx, email, password)
		},
		fulfilled: func(t *api.TokenPair) []store.Action {
			return actions(
				auth.LoginFulfilled{Access: t.Access, Refresh: t.Refresh},
				notify.Success("Welcome back!", "You have successfully signed in"),
			)
		},
		rejected: func(err error) []store.Action {
			msg := loginMessage(err)
			return actions(
				notify.Failure("Sign In Failed", msg),
				auth.LoginRejected{Err: msg},
			)
		},
	})

	return async.Then(login, func(tokens *api.TokenPair, err error) (*api.TokenPair, error) {
		if err != nil {
			return nil, err
		}
		if _, perr := s.FetchProfile(ctx).Wait(); perr != nil {
			logger.Warn("Failed to fetch user profile after login", "error", perr)
		}
		return tokens, nil
	})
}

// Verify checks the stored access token. Without one it rejects at once and
// makes no request.
func (s *AuthService) Verify(ctx context.Context) *async.Task[string] {
	token := s.store.State().Auth.AccessToken
	return run(s.base, ctx, lifecycle[string]{
		op:      "auth/verifyToken",
		pending: actions(auth.VerifyPending{}),
		call: func(ctx context.Context) (string, error) {
			if token == "" {
				return "", errors.ErrNoAccessToken
			}
			return token, s.api.Verify(ctx, token)
		},
		fulfilled: func(token string) []store.Action {
			return actions(auth.VerifyFulfilled{Token: token})
		},
		rejected: func(err error) []store.Action {
			return actions(auth.VerifyRejected{Err: errors.Message(err, "Token verification failed")})
		},
	})
}

// Refresh exchanges the stored refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context) *async.Task[string] {
	return s.refreshWith(ctx, s.store.State().Auth.RefreshToken)
}

func (s *AuthService) refreshWith(ctx context.Context, refresh string) *async.Task[string] {
	return run(s.base, ctx, lifecycle[string]{
		op:      "auth/refreshToken",
		pending: actions(auth.RefreshPending{}),
		call: func(ctx context.Context) (string, error) {
			if refresh == "" {
				return "", errors.ErrNoRefreshToken
			}
			out, err := s.api.Refresh(ctx, refresh)
			if err != nil {
				return "", err
			}
			return out.Access, nil
		},
		fulfilled: func(access string) []store.Action {
			return actions(auth.RefreshFulfilled{Access: access, Refresh: refresh})
		},
		rejected: func(err error) []store.Action {
			return actions(auth.RefreshRejected{Err: errors.Message(err, "Token refresh failed")})
		},
	})
}

// Register creates an account; the server then emails an activation link.
func (s *AuthService) Register(ctx context.Context, req api.RegisterRequest) *async.Task[*api.RegisterResponse] {
	return run(s.base, ctx, lifecycle[*api.RegisterResponse]{
		op:      "auth/register",
		pending: actions(auth.RegisterPending{}),
		call: func(ctx context.Context) (*api.RegisterResponse, error) {
			return s.api.Register(ctx, req)
		},
		fulfilled: func(*api.RegisterResponse) []store.Action {
			return actions(
				auth.RegisterFulfilled{},
				notify.New(notify.KindSuccess, "Registration Successful",
					"Please check your email to confirm your account.", notify.FailureDuration),
			)
		},
		rejected: func(err error) []store.Action {
			msg := registerMessage(err)
			return actions(
				notify.Failure("Registration Failed", msg),
				auth.RegisterRejected{Err: msg},
			)
		},
	})
}

// Activate confirms an account. A stale token rejects with
// errors.ErrLinkExpired so callers can offer registration instead of retry.
func (s *AuthService) Activate(ctx context.Context, uid, token string) *async.Task[struct{}] {
	return run(s.base, ctx, lifecycle[struct{}]{
		op:      "auth/activate",
		pending: actions(auth.ActivatePending{}),
		call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.Activate(ctx, uid, token)
		},
		fulfilled: func(struct{}) []store.Action {
			return actions(
				auth.ActivateFulfilled{},
				notify.New(notify.KindSuccess, "Account Activated",
					"Your account has been successfully activated!", notify.FailureDuration),
			)
		},
		rejected: func(err error) []store.Action {
			if api.IsStaleToken(err) {
				msg := errors.ErrLinkExpired.Message
				return actions(
					notify.Failure("Activation Link Expired", msg),
					auth.ActivateRejected{Err: msg, Expired: true},
				)
			}
			msg := errors.Message(err, "Invalid activation link")
			return actions(
				notify.Failure("Activation Failed", msg),
				auth.ActivateRejected{Err: msg},
			)
		},
		mapErr: func(err error) error {
			if api.IsStaleToken(err) {
				expired := errors.LinkExpiredError()
				expired.Cause = err
				return expired
			}
			return err
		},
	})
}

// FetchProfile loads the signed-in user's profile.
func (s *AuthService) FetchProfile(ctx context.Context) *async.Task[model.User] {
	return run(s.base, ctx, lifecycle[model.User]{
		op:      "auth/fetchProfile",
		pending: actions(auth.ProfilePending{}),
		call: func(ctx context.Context) (model.User, error) {
			dto, err := s.api.Me(ctx)
			if err != nil {
				return model.User{}, err
			}
			return model.UserFromDTO(*dto), nil
		},
		fulfilled: func(u model.User) []store.Action {
			return actions(auth.ProfileFulfilled{User: u})
		},
		rejected: func(err error) []store.Action {
			return actions(auth.ProfileRejected{Err: errors.Message(err, "Failed to fetch profile")})
		},
	})
}

// Logout clears the session. The reducer never notifies; this caller does
// when asked to.
func (s *AuthService) Logout(showNotification bool) {
	s.store.Dispatch(auth.Logout{ShowNotification: showNotification})
	if showNotification {
		s.store.Dispatch(notify.Info("Signed out", "You have been signed out"))
	}
}

// EnsureSession restores a persisted session at startup. An access token
// whose exp has passed is refreshed first; a token the server rejects gets
// one refresh attempt with the refresh token held before verification. A
// session that cannot be restored ends anonymous, without an error. The
// task resolves to the resulting phase and never rejects.
func (s *AuthService) EnsureSession(ctx context.Context) *async.Task[auth.Phase] {
	return async.Go(ctx, func(ctx context.Context) (auth.Phase, error) {
		st := s.store.State().Auth
		if st.IsAuthenticated || st.AccessToken == "" {
			return auth.PhaseOf(st), nil
		}

		refresh := st.RefreshToken
		var err error
		if auth.TokenExpired(st.AccessToken, s.now()) && refresh != "" {
			logger.Debug("Access token expired, refreshing")
			_, err = s.refreshWith(ctx, refresh).Wait()
		} else {
			_, err = s.Verify(ctx).Wait()
			if err != nil && refresh != "" && !stderrors.Is(err, errors.ErrNoAccessToken) {
				logger.Debug("Access token rejected, refreshing", "error", err)
				_, err = s.refreshWith(ctx, refresh).Wait()
			}
		}

		if err != nil {
			logger.Info("Stored session could not be restored", "error", err)
			s.store.Dispatch(auth.ClearError{})
			return auth.PhaseOf(s.store.State().Auth), nil
		}
		if _, perr := s.FetchProfile(ctx).Wait(); perr != nil {
			logger.Warn("Failed to fetch user profile", "error", perr)
		}
		return auth.PhaseOf(s.store.State().Auth), nil
	})
}

// loginMessage prefers the server's detail, then its field errors, then the
// generic failure text.
func loginMessage(err error) string {
	var apiErr *api.APIError
	if stderrors.As(err, &apiErr) {
		if d := apiErr.Detail(); d != "" {
			return d
		}
		if f := apiErr.FieldErrors(); len(f) > 0 {
			return f.String()
		}
	}
	return errors.Message(err, "Invalid email or password")
}

// registerMessage joins field-level validation errors into one line,
// falling back to the raw message for bodies of any other shape.
func registerMessage(err error) string {
	var apiErr *api.APIError
	if stderrors.As(err, &apiErr) {
		if f := apiErr.FieldErrors(); len(f) > 0 {
			return f.String()
		}
	}
	return errors.Message(err, "Registration failed")
}
