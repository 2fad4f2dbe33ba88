package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tiffincrm/internal/api"
	"github.com/mesh-intelligence/tiffincrm/internal/config"
	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/internal/service"
	"github.com/mesh-intelligence/tiffincrm/internal/sqlite"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long:  "Open the database and serve the JSON API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				p, err := config.ParsePort(port)
				if err != nil {
					return &userError{err: err}
				}
				cfg.Port = p
			}
			return runServe(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT and config.yaml)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stderr",
		Environment: cfg.Environment,
		Caller:      true,
	})
	defer log.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg.Store()); err != nil {
		log.Error("opening database failed", "error", err)
		return fmt.Errorf("open database: %w", err)
	}
	defer backend.Detach()
	log.Info("database ready", "path", backend.Path())

	router, err := api.NewRouter(api.Deps{
		Customers:   service.NewCustomerService(backend, log),
		Menu:        service.NewMenuService(backend, log),
		Orders:      service.NewOrderService(backend, log),
		DB:          backend,
		Logger:      log,
		Production:  cfg.IsProduction(),
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return &userError{err: err}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Tiffin CRM API listening on http://localhost%s/api\n", cfg.Addr())
	return api.NewServer(cfg.Addr(), router, log).Run(ctx)
}
