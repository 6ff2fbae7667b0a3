package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"vendorapp/internal/config"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg := config.FromViper(v)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "http://65.1.85.105/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.SessionDriver)
	assert.True(t, cfg.PushEnabled)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("REQUEST_TIMEOUT", "3s")
	v.Set("SESSION_DRIVER", "redis")
	v.Set("PUSH_ENABLED", false)

	cfg := config.FromViper(v)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "redis", cfg.SessionDriver)
	assert.False(t, cfg.PushEnabled)
}

func TestFromViper_InvalidTimeoutFallsBack(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("REQUEST_TIMEOUT", "0s")

	cfg := config.FromViper(v)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
