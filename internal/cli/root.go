// Package cli implements the tiffin command-line interface: the API server,
// storage initialisation, and admin commands that talk to a running server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/internal/client"
	"github.com/mesh-intelligence/tiffincrm/internal/config"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	apiURL    string
	envFile   string
	jsonMode  bool
}

var flags rootFlags

// userError marks a failure caused by bad input rather than the system.
type userError struct{ err error }

func (e *userError) Error() string { return e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

// NewRootCmd creates the top-level "tiffin" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}

	root := &cobra.Command{
		Use:     "tiffin",
		Short:   "Meal subscription CRM for a tiffin service",
		Long:    "tiffin runs the TiffinCRM API server and manages customers, the menu,\nand orders through it.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/tiffincrm)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/tiffincrm)")
	root.PersistentFlags().StringVar(&flags.apiURL, "api", "", "API base URL (default: http://localhost:5000/api)")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default: .env)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCustomersCmd())
	root.AddCommand(newMenuCmd())
	root.AddCommand(newOrdersCmd())
	root.AddCommand(newDashboardCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to exitUserError for bad input and client-side API
// failures, and exitSysError for everything else.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue *userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return exitUserError
	}
	return exitSysError
}

// loadConfig resolves configuration with the global flag overrides applied.
func loadConfig() (*config.Config, error) {
	return config.Load(config.Options{
		ConfigDir: flags.configDir,
		DataDir:   flags.dataDir,
		APIURL:    flags.apiURL,
		EnvFile:   flags.envFile,
	})
}

// newClient builds an API client from configuration.
func newClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.APIURL), nil
}

// Main is the process entry point used by cmd/tiffin.
func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
