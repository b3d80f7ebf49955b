package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigoplimafreire/ats-resume/internal/config"
	"github.com/rodrigoplimafreire/ats-resume/internal/llm"
)

func resetServeFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		servePort = 0
		serveRateLimit = true
	}
	reset()
	t.Cleanup(reset)
}

func TestServerConfig_FromAppConfig(t *testing.T) {
	resetServeFlags(t)
	cfg := &config.AppConfig{
		APIKey:      "test-key",
		Models:      llm.DefaultConfig(),
		ServerPort:  8080,
		ScanTimeout: 90 * time.Second,
	}

	sc := serverConfig(cfg)

	assert.Equal(t, 8080, sc.Port)
	assert.Equal(t, "test-key", sc.APIKey)
	assert.Equal(t, cfg.Models, sc.Models)
	assert.Equal(t, 90*time.Second, sc.ScanTimeout)
	assert.Nil(t, sc.RateLimit)
}

func TestServerConfig_PortFlag(t *testing.T) {
	resetServeFlags(t)
	servePort = 9999

	sc := serverConfig(&config.AppConfig{ServerPort: 8080})
	assert.Equal(t, 9999, sc.Port)
}

func TestServerConfig_RateLimitDisabled(t *testing.T) {
	resetServeFlags(t)
	serveRateLimit = false

	sc := serverConfig(&config.AppConfig{ServerPort: 8080})
	assert.NotNil(t, sc.RateLimit)
	assert.False(t, sc.RateLimit.Enabled)
}
