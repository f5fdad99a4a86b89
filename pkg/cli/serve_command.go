package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/bbq-beach/agents/pkg/a2aserver"
	"github.com/bbq-beach/agents/pkg/beach"
	"github.com/bbq-beach/agents/pkg/executor"
)

// serveCommand creates the 'serve' command running the BBQ beach agent.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Starts the BBQ beach agent server",
		Flags:  serverFlags(),
		Action: serveCommandAction,
	}
}

func serveCommandAction(c *cli.Context) error {
	cfg, logger, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	host, port := bindAddress(c, &cfg.Beach)

	agent := beach.New(beach.Config{
		SearchAPIKey: cfg.Search.APIKey,
		MockMode:     cfg.Search.MockMode,
	}, logger)

	exec := executor.NewStreamingExecutor(agent, nil, logger)
	server := a2aserver.New(beach.AgentCard(host, port), exec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, host, port)
}
