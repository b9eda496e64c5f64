// Package config resolves and validates the connection settings for
// the AI backend.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Environment variables consulted when explicit values are absent.
const (
	EnvEndpoint = "AZURE_AI_FOUNDRY_ENDPOINT"
	EnvModel    = "AZURE_AI_MODEL"
)

var (
	// endpointPattern accepts http(s) URLs with a domain, localhost,
	// or IPv4 host, an optional port, and an optional path.
	endpointPattern = regexp.MustCompile(
		`(?i)^https?://` +
			`(([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?` +
			`|localhost` +
			`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
			`(:\d+)?` +
			`(/?|[/?]\S+)$`,
	)

	// modelPattern restricts model names to alphanumerics, dash,
	// underscore, slash, and dot.
	modelPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
)

// Config holds the resolved connection settings.
type Config struct {
	Endpoint string
	Model    string
	Verbose  bool
}

// Resolve merges explicit values with environment fallbacks. Empty
// endpoint and model fall back to EnvEndpoint and EnvModel via the
// supplied getenv, so callers decide where the environment comes
// from and the result is a plain value.
func Resolve(endpoint, model string, verbose bool, getenv func(string) string) Config {
	if endpoint == "" {
		endpoint = getenv(EnvEndpoint)
	}

	if model == "" {
		model = getenv(EnvModel)
	}

	return Config{
		Endpoint: endpoint,
		Model:    model,
		Verbose:  verbose,
	}
}

// Validate checks the endpoint and model, reporting every violation
// at once in a single multi-line error rather than stopping at the
// first.
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.Endpoint == "":
		errs = append(errs, fmt.Errorf(
			"%s is required: set it via environment variable or the --endpoint flag",
			EnvEndpoint,
		))
	case !endpointPattern.MatchString(c.Endpoint):
		errs = append(errs, fmt.Errorf(
			"%s is not a valid URL: %q (expected format: https://your-resource.azure.com)",
			EnvEndpoint, c.Endpoint,
		))
	}

	switch {
	case c.Model == "":
		errs = append(errs, fmt.Errorf(
			"%s is required: set it via environment variable or the --model flag",
			EnvModel,
		))
	case !modelPattern.MatchString(c.Model):
		errs = append(errs, fmt.Errorf(
			"%s has invalid format: %q (expected format: deployment-name or provider/model-name)",
			EnvModel, c.Model,
		))
	}

	if len(errs) > 0 {
		return &multierror.Error{
			Errors:      errs,
			ErrorFormat: formatErrors,
		}
	}

	return nil
}

func formatErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}

	return "configuration validation failed:\n" + strings.Join(lines, "\n")
}
