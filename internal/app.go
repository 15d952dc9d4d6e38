package internal

import (
	"activitybot/internal/controllers"
	"activitybot/internal/providers"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer  *http.Server
	scheduler  interfaces.SchedulerInterface
	notifier   providers.NotifierInterface
	compressor interfaces.CompressorInterface
	conf       *structures.Config
	logger     providers.Logger
}

func NewApp(apiController *controllers.ApiController, adminController *controllers.AdminController, healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, notifier providers.NotifierInterface, compressor interfaces.CompressorInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API and admin routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler:  scheduler,
		notifier:   notifier,
		compressor: compressor,
		conf:       conf,
		logger:     logger,
	}
}

// Run restores the activity document, starts the scheduled jobs and serves
// HTTP until SIGINT or SIGTERM. The document is persisted on the way out.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if a.conf.Discord.GuildID != "" {
		a.logger.Infof(providers.TypeApp, "Tracking guild %s", a.conf.Discord.GuildID)
	}
	if !a.notifier.Enabled() {
		a.logger.Warnf(providers.TypeApp, "Report channel is not configured, scheduled reports will be skipped")
	}

	err := a.scheduler.Restore()
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	a.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	return a.shutdown(runErr)
}

func (a *App) shutdown(runErr error) error {
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.scheduler.Persist(); err != nil {
		a.logger.Errorf(providers.TypeApp, "Final persist failed: %s", err)
		if runErr == nil {
			runErr = err
		}
	}
	a.notifier.Close(ctx)
	a.compressor.Close()
	if runErr == nil {
		a.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return runErr
}
