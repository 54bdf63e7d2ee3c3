package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/zerowrap"
	"github.com/spf13/viper"

	"github.com/bnema/wharf/internal/adapters/out/caddyadmin"
	"github.com/bnema/wharf/internal/adapters/out/docker"
	"github.com/bnema/wharf/internal/adapters/out/httpprober"
	"github.com/bnema/wharf/internal/usecase/certwatch"
	"github.com/bnema/wharf/internal/usecase/config"
	"github.com/bnema/wharf/internal/usecase/reconcile"
	"github.com/bnema/wharf/internal/usecase/routing"
)

// services holds the wired adapters and use cases.
type services struct {
	inventory    *docker.Inventory
	logSource    *docker.LogSource
	control      *caddyadmin.Client
	configSvc    *config.Service
	routingSvc   *routing.Service
	certSvc      *certwatch.Service
	reconcileSvc *reconcile.Service
	log          zerowrap.Logger
}

// Run starts the reconciler and blocks until a shutdown signal arrives.
func Run(ctx context.Context, configPath string) error {
	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return err
	}

	configSvc := config.NewService(v)
	if err := configSvc.Load(ctx); err != nil {
		return err
	}
	cfg := configSvc.Get()

	log, cleanup, err := initLogger(cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	ctx = zerowrap.WithCtx(ctx, log)
	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Str(zerowrap.FieldComponent, "wharf").
		Str("caddy_admin", cfg.CaddyAdminAddr).
		Dur("poll_interval", cfg.PollInterval).
		Msg("starting wharf")

	configSvc.Watch(ctx)

	svc, err := createServices(ctx, cfg, configSvc, log)
	if err != nil {
		return err
	}

	svc.reconcileSvc.Start(ctx)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().
			Str(zerowrap.FieldLayer, "app").
			Str("signal", sig.String()).
			Msg("received shutdown signal")
	case <-ctx.Done():
		log.Info().
			Str(zerowrap.FieldLayer, "app").
			Msg("context cancelled")
	}

	svc.reconcileSvc.Stop()

	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Msg("wharf shutdown complete")

	return nil
}

// createServices wires the adapters and use cases together.
func createServices(ctx context.Context, cfg config.Config, configSvc *config.Service, log zerowrap.Logger) (*services, error) {
	inventory, err := docker.NewInventory()
	if err != nil {
		return nil, log.WrapErr(err, "failed to create Docker inventory")
	}

	if err := inventory.Ping(ctx); err != nil {
		return nil, log.WrapErr(err, "Docker is not available")
	}
	log.Info().
		Str(zerowrap.FieldLayer, "app").
		Msg("Docker inventory initialized")

	logSource := docker.NewLogSource(inventory.Client(), cfg.CaddyContainerName)

	control := caddyadmin.NewClient(cfg.CaddyAdminAddr,
		caddyadmin.WithTimeouts(cfg.ReadTimeout, cfg.ApplyTimeout),
		caddyadmin.WithServerName(serverName(cfg)),
	)

	routingSvc := routing.NewService()
	certSvc := certwatch.NewService(logSource, control)
	prober := httpprober.New(httpprober.WithTimeout(cfg.ReadTimeout))

	reconcileSvc := reconcile.NewService(inventory, control, routingSvc, configSvc,
		reconcile.WithServerName(serverName(cfg)),
		reconcile.WithReadTimeout(cfg.ReadTimeout),
		reconcile.WithCertWatcher(certSvc),
		reconcile.WithProber(prober),
	)

	return &services{
		inventory:    inventory,
		logSource:    logSource,
		control:      control,
		configSvc:    configSvc,
		routingSvc:   routingSvc,
		certSvc:      certSvc,
		reconcileSvc: reconcileSvc,
		log:          log,
	}, nil
}

func serverName(cfg config.Config) string {
	if cfg.ServerName != "" {
		return cfg.ServerName
	}
	return routing.DefaultServerName
}
