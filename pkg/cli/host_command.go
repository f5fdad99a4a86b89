package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/host"
)

// hostCommand creates the 'host' command running the routing UI server.
func hostCommand() *cli.Command {
	flags := append(serverFlags(),
		&cli.StringSliceFlag{
			Name:  "remote-agent",
			Usage: "Base URL of a remote agent to register (repeatable)",
		},
	)
	return &cli.Command{
		Name:   "host",
		Usage:  "Starts the routing host agent with the chat web UI",
		Flags:  flags,
		Action: hostCommandAction,
	}
}

func hostCommandAction(c *cli.Context) error {
	cfg, logger, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	bindHost := cfg.Host.Host
	bindPort := cfg.Host.Port
	if c.IsSet("host") {
		bindHost = c.String("host")
	}
	if c.IsSet("port") {
		bindPort = c.Int("port")
	}

	addresses := cfg.Host.RemoteAgents
	if c.IsSet("remote-agent") {
		addresses = c.StringSlice("remote-agent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := host.NewRegistry(logger)
	registry.Register(ctx, addresses)
	if names := registry.Names(); len(names) == 0 {
		logger.Warn("no remote agents reachable, chat will report errors",
			zap.Strings("addresses", addresses))
	} else {
		logger.Info("remote agents registered", zap.Strings("agents", names))
	}

	router := host.NewRouter(registry, logger)
	ui := host.NewWebUI(registry, router, logger)

	return ui.Start(ctx, bindHost, bindPort)
}
