// Package cli wires the beach, weather, host and probe commands into
// one binary.
package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/bbq-beach/agents/internal/config"
	"github.com/bbq-beach/agents/internal/logging"
	"go.uber.org/zap"
)

// Version information - will be set during build.
var (
	Version = "dev"
)

// NewApp creates and configures the CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "beachagents",
		Usage:   "BBQ beach and weather A2A agents",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML config file",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			weatherCommand(),
			hostCommand(),
			probeCommand(),
		},
	}
}

// serverFlags are shared by every server command.
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "Hostname to bind the server to",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Port to bind the server to",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
}

// loadEnvironment resolves config and logger for a command, applying
// the log-level flag on top of the file and environment.
func loadEnvironment(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// bindAddress applies host/port flag overrides to a server config.
func bindAddress(c *cli.Context, server *config.AgentServerConfig) (string, int) {
	host := server.Host
	port := server.Port
	if c.IsSet("host") {
		host = c.String("host")
	}
	if c.IsSet("port") {
		port = c.Int("port")
	}
	return host, port
}
