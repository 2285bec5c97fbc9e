package main

import (
	"io"
	"purl/internal/config"
	"purl/internal/fetcher"
	"purl/internal/purl"
	"purl/internal/sanitizer"
	"purl/internal/transport"
	"purl/pkg/logger"
	"purl/pkg/serrors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint: gochecknoglobals

// fetcherFactory builds the fetcher for an invocation from the loaded config.
type fetcherFactory func(cfg *config.Config, req purl.Request) (fetcher.Fetcher, error)

// newFetcher builds the policy-constrained HTTP fetcher.
func newFetcher(cfg *config.Config, req purl.Request) (fetcher.Fetcher, error) {
	opts := transport.NewOptions(cfg)
	opts.Proxy = req.Proxy
	opts.AllowInsecure = req.AllowInsecure

	client, err := transport.NewClient(opts)
	if err != nil {
		return nil, err
	}

	return fetcher.New(client, cfg.HTTP.UserAgent), nil
}

// rootCommand constructs the purl command. Fetched content goes to stdout,
// warnings and logs to stderr.
func rootCommand(stdout, stderr io.Writer, factory fetcherFactory) *cobra.Command {
	var (
		cfg        *config.Config
		configPath string
		verbose    bool
		req        purl.Request
	)

	cmd := &cobra.Command{
		Use:   "purl [flags] <url>",
		Short: "Private URL fetcher",
		Long: "purl fetches a single URL with a secure-by-default policy: https:// is assumed\n" +
			"when no scheme is given, tracking parameters are stripped, plain HTTP is refused\n" +
			"unless --unsecured is set and TLS certificates are always verified.",
		Example: "  purl wttr.in\n" +
			"  purl -H https://example.com/?utm_source=newsletter\n" +
			"  purl -p socks5h://127.0.0.1:9050 example.onion",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return serrors.Wrap(serrors.ErrInternal, err, "could not load config")
			}

			level := loaded.LogLevel
			if verbose {
				level = "debug"
			}
			if err := logger.Setup(logger.Options{
				Environment: loaded.Environment,
				Level:       level,
				Output:      zapcore.AddSync(cmd.ErrOrStderr()),
			}); err != nil {
				return serrors.Wrap(serrors.ErrInternal, err, "could not set up logger")
			}
			cfg = loaded

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithFields(cmd.Context(), zap.String("invocation_id", uuid.New().String()))
			req.URL = args[0]

			runner := purl.New(
				sanitizer.New(sanitizer.NewOptions(cfg)),
				func(r purl.Request) (fetcher.Fetcher, error) { return factory(cfg, r) },
				cmd.OutOrStdout(),
				cmd.ErrOrStderr(),
			)

			return runner.Run(ctx, req)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().BoolVarP(&req.AllowInsecure, "unsecured", "u", false, "Allow insecure HTTP URLs")
	cmd.Flags().StringVarP(&req.Proxy, "proxy", "p", "", "Optional proxy (e.g., socks5h://127.0.0.1:9050)")
	cmd.Flags().BoolVarP(&req.ShowHeaders, "show-headers", "H", false, "Show response headers (lower-case names, sorted by name)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Optional config file path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	return cmd
}
