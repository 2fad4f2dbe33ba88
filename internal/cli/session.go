package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/internal/auth"
	"github.com/mesh-intelligence/tiffincrm/internal/session"
)

func sessionStore() (*session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return session.NewStore(cfg.ConfigDir), nil
}

func newLoginCmd() *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a demo account",
		Long:  "Check credentials against the server and remember the profile locally.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return userErrorf("--email and --password are required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			p, err := c.Login(cmd.Context(), email, password, role)
			if err != nil {
				return err
			}
			store, err := sessionStore()
			if err != nil {
				return err
			}
			if err := store.Save(p); err != nil {
				return err
			}
			return emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Login successful: %s (%s)\n", p.Name, p.Role)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", auth.RoleUser, "account role: admin or user")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore()
			if err != nil {
				return err
			}
			p, err := store.Load()
			if err != nil {
				return err
			}
			if p == nil {
				return userErrorf("not logged in")
			}
			return emit(cmd, p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s <%s> (%s)\n", p.Name, p.Email, p.Role)
				return err
			})
		},
	}
}
