// Package commands implements the qb CLI subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efoft/query-builder/internal/cli/config"
	"github.com/efoft/query-builder/internal/cli/output"
)

type configKey struct{}
type rendererKey struct{}

// WithConfig stores the loaded config in a command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer stores the output renderer in a command context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// commandContext bundles what every command needs.
type commandContext struct {
	Config   *config.Config
	Renderer *output.Renderer
}

// newCommandContext extracts config and renderer from the command's context.
func newCommandContext(cmd *cobra.Command) (*commandContext, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	r, ok := cmd.Context().Value(rendererKey{}).(*output.Renderer)
	if !ok {
		return nil, fmt.Errorf("renderer not initialized")
	}
	return &commandContext{Config: cfg, Renderer: r}, nil
}
