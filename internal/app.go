package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fishdata/internal/controllers"
	"fishdata/internal/providers"
	"fishdata/internal/query"
	"fishdata/internal/services"
	"fishdata/internal/structures"
)

type App struct {
	WebServer *http.Server
}

func NewApp(
	healthController *controllers.HealthController,
	conf *structures.Config,
	logger providers.Logger,
	router providers.RouterProviderInterface,
	metrics providers.MetricsProviderInterface,
	keys services.KeyringServiceInterface,
	audit services.AuditServiceInterface,
	engine query.EngineInterface,
) (*App, error) {
	// Inner mux: authenticated API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Request pipeline: auth -> gzip -> metrics -> routes
	var api http.Handler = apiMux
	api = providers.GzipMiddleware(api)
	api = providers.AuthMiddleware(conf, keys, audit, metrics, logger, api)
	api = providers.MetricsMiddleware(metrics, api)

	// Outer mux: infrastructure endpoints stay unauthenticated
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", api)

	logger.Infof(providers.TypeApp, "Starting %s v%s", conf.AppName, conf.Version)

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

	for {
		select {
		case <-reload:
			logger.Infof(providers.TypeApp, "SIGHUP received, reloading API keys")
			if err := keys.Reload(); err != nil {
				logger.Errorf(providers.TypeApp, "Key reload failed: %s", err)
			}
			continue
		case <-stop:
			logger.Infof(providers.TypeApp, "Shutdown signal received")
		case err := <-serverErr:
			return nil, fmt.Errorf("server error: %w", err)
		}
		break
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}

	audit.Close()
	if err := engine.Close(); err != nil {
		logger.Errorf(providers.TypeApp, "Engine close error: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
