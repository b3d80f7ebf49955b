package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier falls back to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have the custom model, other tiers copied
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", newConfig.GetModel(TierStandard))
}

func TestValidTier(t *testing.T) {
	assert.True(t, ValidTier("lite"))
	assert.True(t, ValidTier("standard"))
	assert.True(t, ValidTier("advanced"))
	assert.False(t, ValidTier("turbo"))
	assert.False(t, ValidTier(""))
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}
