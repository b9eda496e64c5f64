package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestResolveExplicitValuesWin(t *testing.T) {
	getenv := fakeEnv(map[string]string{
		EnvEndpoint: "https://env.azure.com",
		EnvModel:    "env-model",
	})

	cfg := Resolve("https://flag.azure.com", "flag-model", true, getenv)

	assert.Equal(t, "https://flag.azure.com", cfg.Endpoint)
	assert.Equal(t, "flag-model", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestResolveEnvFallback(t *testing.T) {
	getenv := fakeEnv(map[string]string{
		EnvEndpoint: "https://env.azure.com",
		EnvModel:    "env-model",
	})

	cfg := Resolve("", "", false, getenv)

	assert.Equal(t, "https://env.azure.com", cfg.Endpoint)
	assert.Equal(t, "env-model", cfg.Model)
	assert.False(t, cfg.Verbose)
}

func TestResolveEmptyEnvironment(t *testing.T) {
	cfg := Resolve("", "", false, fakeEnv(nil))

	assert.Empty(t, cfg.Endpoint)
	assert.Empty(t, cfg.Model)
}

func TestValidateValid(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		model    string
	}{
		{"https domain", "https://test.azure.com", "gpt-4"},
		{"trailing path", "https://my-resource.azure.com/api/v1", "gpt-4o"},
		{"localhost with port", "http://localhost:8080", "llama-3"},
		{"ipv4", "http://127.0.0.1/models", "meta/llama-3.1-405b"},
		{"dotted model", "https://test.azure.com", "deployment_name.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Endpoint: tt.endpoint, Model: tt.model}
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidateMissingEndpoint(t *testing.T) {
	cfg := Config{Model: "gpt-4"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvEndpoint+" is required")
}

func TestValidateInvalidEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"no scheme", "test.azure.com"},
		{"wrong scheme", "ftp://test.azure.com"},
		{"scheme only", "https://"},
		{"spaces", "https://test azure com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Endpoint: tt.endpoint, Model: "gpt-4"}

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a valid URL")
		})
	}
}

func TestValidateMissingModel(t *testing.T) {
	cfg := Config{Endpoint: "https://test.azure.com"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvModel+" is required")
}

func TestValidateInvalidModel(t *testing.T) {
	tests := []struct {
		name  string
		model string
	}{
		{"spaces", "bad model"},
		{"whitespace only", "   "},
		{"shell metacharacters", "gpt-4;rm"},
		{"unicode", "modèle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Endpoint: "https://test.azure.com", Model: tt.model}

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid format")
		})
	}
}

func TestValidateAggregatesViolations(t *testing.T) {
	cfg := Config{}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "configuration validation failed:")
	assert.Contains(t, msg, EnvEndpoint+" is required")
	assert.Contains(t, msg, EnvModel+" is required")
	assert.Equal(t, 2, strings.Count(msg, "\n  - "),
		"both violations should be reported as list items")
}
