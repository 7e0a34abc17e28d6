// Package cli implements the gatewayctl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bjaus/gateway"
	"github.com/bjaus/gateway/config"
	"github.com/bjaus/gateway/logging"
	"github.com/bjaus/gateway/metrics"
	"github.com/bjaus/gateway/natsource"
)

// app is filled in by the root command before any subcommand runs.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
}

// Execute runs gatewayctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the gatewayctl command tree.
func NewRootCmd() *cobra.Command {
	rt := &app{}

	root := &cobra.Command{
		Use:           "gatewayctl",
		Short:         "Inspect and dispatch Discord gateway frames",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return err
			}
			if rt.logLevel != "" {
				cfg.LogLevel = rt.logLevel
			}
			l, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			rt.cfg, rt.log = cfg, l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "Config file (.yaml, .toml or .json)")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newKindsCmd(), newReplayCmd(rt), newListenCmd(rt))
	return root
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the gateway events the dispatcher recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range gateway.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func newReplayCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:     "replay [file]",
		Short:   "Dispatch newline-delimited gateway frames from a file or stdin",
		Example: "  gatewayctl replay capture.ndjson\n  cat capture.ndjson | gatewayctl replay",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			r := gateway.NewRouter()
			t := newTally(r)
			d := gateway.NewDispatcher(r, gateway.NewRegistry(builtinHandlers...), gateway.WithLogger(rt.log))

			s, err := replay(cmd.Context(), in, d, t)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newListenCmd(rt *app) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Dispatch gateway frames published on a NATS subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, rt.cfg, rt.log)
		},
	}
}

func listen(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	nc, err := natsource.Connect(cfg.NATSURL, cfg.ClientName, log)
	if err != nil {
		return err
	}
	defer nc.Close()

	reg := prometheus.NewRegistry()
	col := metrics.New(reg)

	r := gateway.NewRouter()
	col.Attach(r)
	r.RegisterAnyFunc(func(c *gateway.Context) error {
		c.Logger().Debug().Int("bytes", len(c.Payload())).Msg("event received")
		return nil
	})

	opts := append(col.Options(),
		gateway.WithLogger(log),
		gateway.WithConcurrency(cfg.Concurrency),
	)
	d := gateway.NewDispatcher(r, gateway.NewRegistry(builtinHandlers...), opts...)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Msg("metrics shutdown error")
			}
		}()
	}

	src := natsource.New(nc, cfg.NATSSubject, d,
		natsource.WithQueue(cfg.NATSQueue),
		natsource.WithBuffer(cfg.Buffer),
		natsource.WithLogger(log),
	)
	err = src.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
