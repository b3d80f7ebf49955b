// Package config reads process configuration from the environment.
// Commands call Load at startup, layer flag overrides on top, then
// Validate before doing any work that needs credentials.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rodrigoplimafreire/ats-resume/internal/llm"
)

// Defaults applied when the environment does not override them.
const (
	DefaultServerPort  = 8080
	DefaultScanTimeout = 120 * time.Second
)

// MissingVarError reports a required environment variable that is not set.
type MissingVarError struct {
	Var string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("%s is not set", e.Var)
}

// InvalidVarError reports an environment variable with an unusable value.
type InvalidVarError struct {
	Var    string
	Value  string
	Reason string
}

func (e *InvalidVarError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Var, e.Value, e.Reason)
}

// AppConfig holds everything the CLI and server need at startup.
type AppConfig struct {
	// APIKey authenticates against the Gemini API. Sourced from
	// GEMINI_API_KEY, overridable per command via --api-key.
	APIKey string

	// Models maps tiers to Gemini model names.
	Models *llm.Config

	// ServerPort is the listen port for the serve command.
	ServerPort int

	// ScanTimeout bounds a single scan, model call included.
	ScanTimeout time.Duration
}

// Load builds an AppConfig from the environment. Syntax errors in
// numeric or duration variables are reported immediately; missing
// credentials are left for Validate so flags can still fill them in.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Models:      loadModels(),
		ServerPort:  DefaultServerPort,
		ScanTimeout: DefaultScanTimeout,
	}

	if raw := os.Getenv("ATS_SERVER_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &InvalidVarError{Var: "ATS_SERVER_PORT", Value: raw, Reason: "must be an integer"}
		}
		if port < 1 || port > 65535 {
			return nil, &InvalidVarError{Var: "ATS_SERVER_PORT", Value: raw, Reason: "must be between 1 and 65535"}
		}
		cfg.ServerPort = port
	}

	if raw := os.Getenv("ATS_REQUEST_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &InvalidVarError{Var: "ATS_REQUEST_TIMEOUT", Value: raw, Reason: "must be a duration such as 90s or 2m"}
		}
		if timeout <= 0 {
			return nil, &InvalidVarError{Var: "ATS_REQUEST_TIMEOUT", Value: raw, Reason: "must be positive"}
		}
		cfg.ScanTimeout = timeout
	}

	return cfg, nil
}

func loadModels() *llm.Config {
	models := llm.DefaultConfig()
	for tier, envVar := range map[llm.ModelTier]string{
		llm.TierLite:     "ATS_MODEL_LITE",
		llm.TierStandard: "ATS_MODEL_STANDARD",
		llm.TierAdvanced: "ATS_MODEL_ADVANCED",
	} {
		if model := os.Getenv(envVar); model != "" {
			models = models.WithModel(tier, model)
		}
	}
	return models
}

// Validate checks that the configuration is complete enough to reach
// the model. Called after flag overrides so a --api-key flag satisfies
// the credential requirement.
func (c *AppConfig) Validate() error {
	if c.APIKey == "" {
		return &MissingVarError{Var: "GEMINI_API_KEY"}
	}
	return nil
}
