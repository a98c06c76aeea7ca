package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/serve"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start an HTTP server rendering the built-in demo app.

Configuration is read from loom.yml in the working directory when
present; flags override the file.

Examples:
  loom serve
  loom serve --address :3000
  loom serve --config ./deploy/loom.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, address)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "loom.yml", "Path to the config file")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides config)")

	return cmd
}

func runServe(configPath, address string) error {
	config, err := serve.LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		config = serve.DefaultConfig()
		info("no %s found, using defaults", configPath)
	} else if err != nil {
		return err
	} else {
		success("loaded %s", configPath)
	}
	if address != "" {
		config.Address = address
	}

	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	success("serving on %s", config.Address)
	info("open http://localhost%s in a browser", config.Address)

	return serve.New(demoApp, config).Run()
}
