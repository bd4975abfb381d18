package cmd

import (
	stderrors "errors"

	"github.com/spf13/cobra"
	"github.com/zfogg/blogfront/pkg/api"
	"github.com/zfogg/blogfront/pkg/errors"
	"github.com/zfogg/blogfront/pkg/formatter"
	"github.com/zfogg/blogfront/pkg/forms"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/prompter"
)

var (
	authEmail    string
	authUsername string
	authPassword string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Sign in, register, activate your account and manage the stored session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := orPrompt(authEmail, "Email")
		if err != nil {
			return err
		}
		password := authPassword
		if password == "" {
			if password, err = prompter.PromptPassword("Password"); err != nil {
				return err
			}
		}

		form := forms.SignInForm{Email: email, Password: password}
		if err := form.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if _, err := application.Auth.Login(ctx, form.Email, form.Password).Await(ctx); err != nil {
			return shown(err)
		}
		if u := application.Store.State().Auth.User; u != nil {
			return formatter.PrintUser(*u)
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  "Register a new account. The server emails an activation link; pass its uid and token to 'auth activate'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := orPrompt(authEmail, "Email")
		if err != nil {
			return err
		}
		username, err := orPrompt(authUsername, "Username")
		if err != nil {
			return err
		}
		password, err := prompter.PromptPassword("Password")
		if err != nil {
			return err
		}
		confirm, err := prompter.PromptPassword("Confirm password")
		if err != nil {
			return err
		}

		req, err := forms.SignUpForm{Email: email, Username: username, Password: password, Confirm: confirm}.Request()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, err = application.Auth.Register(ctx, req).Await(ctx)
		return shown(err)
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <uid> <token>",
	Short: "Activate an account from the emailed link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, err := application.Auth.Activate(ctx, args[0], args[1]).Await(ctx)
		return shown(err)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Store.State().Auth.IsAuthenticated && application.Store.State().Auth.AccessToken == "" {
			output.PrintInfo("Not signed in")
			return nil
		}
		application.Auth.Logout(true)
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireSession(ctx); err != nil {
			return err
		}
		u := application.Store.State().Auth.User
		if u == nil {
			user, err := application.Auth.FetchProfile(ctx).Await(ctx)
			if err != nil {
				return err
			}
			u = &user
		}
		return formatter.PrintUser(*u)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the stored access token with the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := application.Auth.Verify(ctx).Await(ctx); err != nil {
			if stderrors.Is(err, errors.ErrNoAccessToken) {
				return errors.UnauthorizedError("You are not signed in")
			}
			if api.IsUnauthorized(err) {
				return errors.UnauthorizedError("Your session has expired")
			}
			return err
		}
		output.PrintSuccess("Access token is valid")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a new access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := application.Auth.Refresh(ctx).Await(ctx); err != nil {
			return err
		}
		output.PrintSuccess("Access token refreshed")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email (prompted when empty)")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when empty)")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email (prompted when empty)")
	registerCmd.Flags().StringVar(&authUsername, "username", "", "Username (prompted when empty)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(activateCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(meCmd)
	authCmd.AddCommand(verifyCmd)
	authCmd.AddCommand(refreshCmd)
}
