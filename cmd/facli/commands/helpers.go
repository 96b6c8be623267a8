// Package commands implements the facli subcommands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/arraykit-io/flasharray-client/pkg/faclient"
	"github.com/arraykit-io/flasharray-client/pkg/flasharray"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// Static errors for err113 compliance.
var (
	ErrNoArrayConfigured = errors.New("no array configured; use --array or run 'facli login'")
	ErrNoAPIToken        = errors.New("no API token configured; use --api-token or run 'facli login'")
	ErrSizeRequired      = errors.New("size is required")
)

// defaultListPageSize bounds list output when no explicit limit is given.
const defaultListPageSize = 100

// CreateClient builds a client from the effective CLI configuration.
func CreateClient(ctx context.Context) (flasharray.Client, error) {
	endpoint := viper.GetString("array")
	if endpoint == "" {
		return nil, ErrNoArrayConfigured
	}

	apiToken := viper.GetString("api-token")
	if apiToken == "" {
		return nil, ErrNoAPIToken
	}

	client, err := faclient.New(ctx, &flasharray.Config{
		Endpoint:   endpoint,
		APIToken:   apiToken,
		APIVersion: viper.GetString("api-version"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// outputYAML writes v to stdout as YAML.
func outputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

// formatBytes renders a byte count in a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
