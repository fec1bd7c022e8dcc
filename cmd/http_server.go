package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/talento-plus/internal/auth"
	"github.com/frahmantamala/talento-plus/internal/cv"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/frahmantamala/talento-plus/internal/importer"
	"github.com/frahmantamala/talento-plus/internal/transport"
	"github.com/frahmantamala/talento-plus/internal/transport/rest"
	"github.com/frahmantamala/talento-plus/internal/transport/swagger"
	"github.com/frahmantamala/talento-plus/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.L()

	deps, err := initializeDependencies(config, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	router, err := setupRoutes(deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", config.Server.Port)
	log.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: config.Server.ReadHeaderTimeout,
		ReadTimeout:       config.Server.ReadTimeout,
		WriteTimeout:      config.Server.WriteTimeout,
		IdleTimeout:       config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
		deps.Close()
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) (*chi.Mux, error) {
	cfg := deps.Config
	base := &transport.BaseHandler{Logger: deps.Logger}

	var spec *swagger.Spec
	if cfg.Server.OpenAPIPath != "" {
		loaded, err := swagger.Load(context.Background(), cfg.Server.OpenAPIPath)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, deps.DB, rest.Handlers{
		Auth:      auth.NewHandler(base, deps.Accounts),
		Employee:  employee.NewHandler(base, deps.Employees),
		Dimension: dimension.NewHandler(base, deps.Dimensions),
		Import:    importer.NewHandler(base, deps.Importer, cfg.Import.MaxUploadBytes),
		CV:        cv.NewHandler(base, deps.Employees),
	}, spec, splitOrigins(cfg.Server.AllowedOrigins), deps.Logger)

	return router, nil
}
