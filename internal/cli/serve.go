package cli

import (
	"github.com/spf13/cobra"

	"github.com/NikolaOgnjenovic/Graph-visualizer/internal/server"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/config"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace/stores"
)

// serveCommand runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server exposing parse, render, and workspace
endpoints. Configuration is read from the config file with flags
taking precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, err := stores.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := c.newRunner(noCache || !cfg.CacheEnabled())
			defer runner.Close()

			c.Logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"store", cfg.Store.Backend)
			srv := server.New(runner, store, c.Logger, cfg.Server)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
