package compose

import (
	"context"
	"fmt"

	"ddsmatrix/internal/config"
)

// Client issues compose subcommands through an Executor.
type Client struct {
	executor Executor
	base     []string
	dir      string
}

// NewClient creates a client for the CLI described by settings.
func NewClient(executor Executor, settings config.ComposeSettings) *Client {
	base := append([]string(nil), settings.Command...)
	for _, f := range settings.Files {
		base = append(base, "-f", f)
	}
	return &Client{
		executor: executor,
		base:     base,
		dir:      settings.WorkDir,
	}
}

func (c *Client) command(env Environment, quiet bool, args ...string) Command {
	argv := make([]string, 0, len(c.base)+len(args))
	argv = append(argv, c.base...)
	argv = append(argv, args...)
	return Command{Args: argv, Env: env, Dir: c.dir, Quiet: quiet}
}

// Build runs `build <services...>`.
func (c *Client) Build(ctx context.Context, env Environment, services ...string) error {
	return c.executor.Run(ctx, c.command(env, false, append([]string{"build"}, services...)...))
}

// Up runs `up -d <services...>`.
func (c *Client) Up(ctx context.Context, env Environment, services ...string) error {
	return c.executor.Run(ctx, c.command(env, false, append([]string{"up", "-d"}, services...)...))
}

// Down runs `down` with its output discarded.
func (c *Client) Down(ctx context.Context, env Environment) error {
	return c.executor.Run(ctx, c.command(env, true, "down"))
}

// Logs follows the combined output of service with `logs -f --no-color`.
func (c *Client) Logs(ctx context.Context, env Environment, service string) (Stream, error) {
	stream, err := c.executor.Start(ctx, c.command(env, false, "logs", "-f", "--no-color", service))
	if err != nil {
		return nil, fmt.Errorf("failed to follow logs of %s: %w", service, err)
	}
	return stream, nil
}
