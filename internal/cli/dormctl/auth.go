package dormctl

import (
	"fmt"

	"dorm-delivery/pkg/client"
	"github.com/spf13/cobra"
)

func (a *app) registerCommand() *cobra.Command {
	var req client.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = client.Role(role)
			if !req.Role.Valid() {
				return fmt.Errorf("unknown role %q: want customer, delivery or admin", role)
			}

			user, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				return a.failed("register", "Registration failed", err)
			}
			writef(cmd.OutOrStdout(), "Registered %s (%s) as %s, you can log in now\n", user.Name, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", string(client.RoleCustomer), "customer, delivery or admin")
	for _, name := range []string{"username", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return a.failed("login", "Login failed", err)
			}

			role := string(sess.Role)
			if role == "" {
				role = "unknown role"
			}
			writef(cmd.OutOrStdout(), "Logged in as %s\n", role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, loggedIn := a.client.Session(); !loggedIn {
				return client.ErrNotLoggedIn
			}

			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return a.failed("read current user", "Failed to load profile", err)
			}
			writef(cmd.OutOrStdout(), "#%d %s <%s> role=%s rating=%.1f\n", user.ID, user.Name, user.Email, user.Role, user.Rating)
			return nil
		},
	}
}

func (a *app) navCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Show the commands available to the current role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, loggedIn := a.client.Session()
			for _, link := range client.NavLinks(sess.Role, loggedIn) {
				writef(cmd.OutOrStdout(), "%-16s dormctl %s\n", link.Label, link.Command)
			}
			return nil
		},
	}
}
