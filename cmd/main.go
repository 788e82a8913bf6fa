package main

//
//  @title           tradedesk API
//  @version         1.0
//  @description     Trade desk service: schema-validated users and trades.
//  @termsOfService  https://github.com/guttosm/tradedesk
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradedesk
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        users
//  @tag.description User lookup
//
//  @tag.name        trades
//  @tag.description Paginated trade listing and batch submission
//
//  @tag.name        schemas
//  @tag.description OpenAPI projections of the entity schemas
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/tradedesk/config"
	_ "github.com/guttosm/tradedesk/docs" // swagger docs
	"github.com/guttosm/tradedesk/internal/app"
	"github.com/guttosm/tradedesk/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runSeed loads the configured fixtures into the configured store and logs
// the per-collection outcome.
func runSeed(ctx context.Context, strict bool) error {
	report, err := app.SeedStore(ctx, strict)
	for _, rep := range report {
		logger.L().Info().
			Str("collection", string(rep.Collection)).
			Int("accepted", rep.Accepted).
			Int("rejected", rep.Rejected).
			Msg("seed_report")
	}
	return err
}

// main is the entry point of the tradedesk application.
//
// Modes (selected via --mode flag):
//   - api:  Starts the REST API. The memory store is seeded at startup.
//   - seed: Validates the fixtures and appends them to the configured store.
//
// Flags:
//   - --mode:     Execution mode ("api" or "seed"). Default: "api".
//   - --fixtures: YAML/JSON fixtures file. Defaults to FIXTURES_PATH (empty = built-in).
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
//   - --strict:   Seed mode only: abort on the first invalid fixture, writing nothing.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or seed")
	fixtures := flag.String("fixtures", config.AppConfig.Store.FixturesPath, "Fixtures file (empty = built-in)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	strict := flag.Bool("strict", false, "Fail the seed on any invalid fixture")
	flag.Parse()

	config.AppConfig.Store.FixturesPath = *fixtures

	switch *mode {
	case "seed":
		logger.L().Info().Str("driver", config.AppConfig.Store.Driver).Msg("running seed")
		if err := runSeed(ctx, *strict); err != nil {
			logger.L().Fatal().Err(err).Msg("seed_failed")
		}
		logger.L().Info().Msg("seed completed successfully")

	case "api":
		logger.L().Info().Str("driver", config.AppConfig.Store.Driver).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
