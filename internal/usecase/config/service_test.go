package config

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func TestService_Load(t *testing.T) {
	v := viper.New()
	v.Set("caddy.admin_addr", "http://caddy:2019")
	v.Set("caddy.container_name", "edge-caddy")
	v.Set("caddy.server_name", "edge")
	v.Set("reconcile.poll_interval", "45s")
	v.Set("reconcile.read_timeout", "3s")
	v.Set("reconcile.apply_timeout", "15s")
	v.Set("acme.email", "ops@example.com")
	v.Set("logging.level", "debug")
	v.Set("logging.format", "json")

	svc := NewService(v)
	require.NoError(t, svc.Load(testContext()))

	cfg := svc.Get()
	assert.Equal(t, "http://caddy:2019", cfg.CaddyAdminAddr)
	assert.Equal(t, "edge-caddy", cfg.CaddyContainerName)
	assert.Equal(t, "edge", cfg.ServerName)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.ApplyTimeout)
	assert.Equal(t, "ops@example.com", cfg.ACMEEmail)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestService_LoadDefaults(t *testing.T) {
	svc := NewService(viper.New())
	require.NoError(t, svc.Load(testContext()))

	cfg := svc.Get()
	assert.Equal(t, DefaultCaddyAdminAddr, cfg.CaddyAdminAddr)
	assert.Equal(t, DefaultCaddyContainerName, cfg.CaddyContainerName)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, DefaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, DefaultApplyTimeout, cfg.ApplyTimeout)
	assert.Empty(t, cfg.ACMEEmail)
}

func TestService_NegativeIntervalFallsBackToDefault(t *testing.T) {
	v := viper.New()
	v.Set("reconcile.poll_interval", "-10s")

	svc := NewService(v)
	require.NoError(t, svc.Load(testContext()))

	assert.Equal(t, DefaultPollInterval, svc.PollInterval())
}

func TestService_FileLoggingSettings(t *testing.T) {
	v := viper.New()
	v.Set("logging.file.enabled", true)
	v.Set("logging.file.path", "/var/log/wharf/wharf.log")
	v.Set("logging.file.max_size", 20)
	v.Set("logging.file.max_backups", 5)
	v.Set("logging.file.max_age", 14)

	svc := NewService(v)
	require.NoError(t, svc.Load(testContext()))

	cfg := svc.Get()
	assert.True(t, cfg.LogFile.Enabled)
	assert.Equal(t, "/var/log/wharf/wharf.log", cfg.LogFile.Path)
	assert.Equal(t, 20, cfg.LogFile.MaxSize)
	assert.Equal(t, 5, cfg.LogFile.MaxBackups)
	assert.Equal(t, 14, cfg.LogFile.MaxAge)
}

func TestService_AccessorsReflectLoadedValues(t *testing.T) {
	v := viper.New()
	v.Set("acme.email", "certs@example.com")
	v.Set("reconcile.poll_interval", "1m")

	svc := NewService(v)
	require.NoError(t, svc.Load(testContext()))

	assert.Equal(t, "certs@example.com", svc.ACMEEmail())
	assert.Equal(t, time.Minute, svc.PollInterval())
}
