// Package config implements the configuration management use case.
package config

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds the loaded configuration.
type Config struct {
	CaddyAdminAddr     string        // base address of the proxy admin API
	CaddyContainerName string        // container whose logs are the proxy log source
	ServerName         string        // server block managed by the loop
	PollInterval       time.Duration // fixed inter-cycle delay
	ReadTimeout        time.Duration
	ApplyTimeout       time.Duration
	ACMEEmail          string // certificate-authority contact email override
	LogLevel           string
	LogFormat          string
	LogFile            FileConfig
}

// FileConfig holds optional file-logging settings.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// Defaults applied when the configuration file leaves values unset.
const (
	DefaultCaddyAdminAddr     = "http://127.0.0.1:2019"
	DefaultCaddyContainerName = "caddy"
	DefaultPollInterval       = 30 * time.Second
	DefaultReadTimeout        = 5 * time.Second
	DefaultApplyTimeout       = 10 * time.Second
)

// watchDebounce suppresses duplicate fsnotify events on save.
const watchDebounce = 500 * time.Millisecond

// Service implements the in.ConfigService interface.
type Service struct {
	viper      *viper.Viper
	config     Config
	mu         sync.RWMutex
	lastReload time.Time
}

// NewService creates a new config service around a prepared viper instance.
func NewService(v *viper.Viper) *Service {
	return &Service{viper: v}
}

// Load reads the configuration from the viper source into the service.
func (s *Service) Load(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "ConfigLoad",
	})
	log := zerowrap.FromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = s.loadValues()

	log.Info().
		Str("caddy_admin", s.config.CaddyAdminAddr).
		Dur("poll_interval", s.config.PollInterval).
		Msg("configuration loaded")

	return nil
}

// Watch reloads the configuration when the file changes. Editors fire
// several events per save, so reloads within the debounce window collapse
// into one.
func (s *Service) Watch(ctx context.Context) {
	log := zerowrap.FromCtx(ctx)

	s.viper.OnConfigChange(func(e fsnotify.Event) {
		s.mu.Lock()
		if time.Since(s.lastReload) < watchDebounce {
			s.mu.Unlock()
			return
		}
		s.lastReload = time.Now()
		s.config = s.loadValues()
		s.mu.Unlock()

		log.Info().Str("file", e.Name).Msg("configuration reloaded")
	})
	s.viper.WatchConfig()
}

func (s *Service) loadValues() Config {
	cfg := Config{
		CaddyAdminAddr:     s.viper.GetString("caddy.admin_addr"),
		CaddyContainerName: s.viper.GetString("caddy.container_name"),
		ServerName:         s.viper.GetString("caddy.server_name"),
		PollInterval:       s.viper.GetDuration("reconcile.poll_interval"),
		ReadTimeout:        s.viper.GetDuration("reconcile.read_timeout"),
		ApplyTimeout:       s.viper.GetDuration("reconcile.apply_timeout"),
		ACMEEmail:          s.viper.GetString("acme.email"),
		LogLevel:           s.viper.GetString("logging.level"),
		LogFormat:          s.viper.GetString("logging.format"),
		LogFile: FileConfig{
			Enabled:    s.viper.GetBool("logging.file.enabled"),
			Path:       s.viper.GetString("logging.file.path"),
			MaxSize:    s.viper.GetInt("logging.file.max_size"),
			MaxBackups: s.viper.GetInt("logging.file.max_backups"),
			MaxAge:     s.viper.GetInt("logging.file.max_age"),
		},
	}

	if cfg.CaddyAdminAddr == "" {
		cfg.CaddyAdminAddr = DefaultCaddyAdminAddr
	}
	if cfg.CaddyContainerName == "" {
		cfg.CaddyContainerName = DefaultCaddyContainerName
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.ApplyTimeout <= 0 {
		cfg.ApplyTimeout = DefaultApplyTimeout
	}

	return cfg
}

// Get returns a copy of the current configuration.
func (s *Service) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// ACMEEmail implements in.ConfigService.
func (s *Service) ACMEEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.ACMEEmail
}

// PollInterval implements in.ConfigService.
func (s *Service) PollInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.PollInterval
}
