package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/colign/internal/api"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // Redis address for a shared result cache
	noCache   bool   // disable result caching entirely
}

// serveCommand creates the serve command, which runs the alignment
// pipeline as an HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run colign as an HTTP service",
		Long: `Run colign as an HTTP service.

The service exposes POST /v1/align and POST /v1/check with the same
semantics as the local commands. With --redis, alignment results are
cached in Redis so multiple instances share one cache; otherwise the
local file cache is used.

Examples:
  colign serve                           # Listen on :8080, file cache
  colign serve --addr :9000              # Custom address
  colign serve --redis localhost:6379    # Shared Redis cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
			if err != nil {
				return err
			}
			server := api.NewServer(runner, c.Logger)
			return server.ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared result cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}
