package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/bbq-beach/agents/pkg/a2aserver"
	"github.com/bbq-beach/agents/pkg/executor"
	"github.com/bbq-beach/agents/pkg/weather"
)

// weatherCommand creates the 'weather' command running the weather agent.
func weatherCommand() *cli.Command {
	return &cli.Command{
		Name:   "weather",
		Usage:  "Starts the weather agent server",
		Flags:  serverFlags(),
		Action: weatherCommandAction,
	}
}

func weatherCommandAction(c *cli.Context) error {
	cfg, logger, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	host, port := bindAddress(c, &cfg.Weather)

	agent := weather.New(logger)
	exec := executor.NewStreamingExecutor(agent, nil, logger)
	server := a2aserver.New(weather.AgentCard(host, port), exec, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, host, port)
}
