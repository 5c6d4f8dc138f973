// Command scrolldemo browses an endless list in the terminal. Scrolling past
// the configured threshold loads the next page; "/" replaces the query and
// starts over.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/config"
	"github.com/nrfta/infinite-paging-go/logging"
	"github.com/nrfta/infinite-paging-go/metrics"
	"github.com/nrfta/infinite-paging-go/scroll"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type runOptions struct {
	configPath   string
	logFile      string
	watch        bool
	metricsAddr  string
	fetchTimeout time.Duration
}

func newRootCommand() *cobra.Command {
	var (
		opts     runOptions
		logLevel string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:          "scrolldemo",
		Short:        "Browse an endless list with infinite scrolling",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("log-level") {
				level, err := logging.ParseLevel(logLevel)
				if err != nil {
					return err
				}
				cfg.Log.Level = level
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Log.Pretty = pretty
			}

			return run(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "write human-readable logs")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "scrolldemo.log", "file receiving logs while the UI owns the terminal")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the config file when it changes")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().DurationVar(&opts.fetchTimeout, "fetch-timeout", 30*time.Second, "fail page fetches that take longer than this")

	cmd.AddCommand(newInitConfigCommand())
	return cmd
}

func newInitConfigCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func run(ctx context.Context, cfg config.Config, opts runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logOut, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logOut.Close()

	cfg.Log.Output = logOut
	logging.Setup(cfg.Log)
	logger := logging.NewLogger("scrolldemo")

	observer := metrics.New(prometheus.DefaultRegisterer, "scrolldemo")
	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("addr", opts.metricsAddr).Msg("Metrics server failed")
			}
		}()
		defer srv.Close()
	}

	pageFunc, closePages := buildPageFunc(cfg)
	defer closePages()

	changes := newNotifier()
	factory := func(o paging.Options, vp paging.Viewport) (*paging.Controller[string, string], *scroll.Source, error) {
		observers := []paging.Observer{changes, observer}
		if o.EnableLog {
			observers = append(observers, paging.NewLogObserver(logging.NewLogger("paging")))
		}

		ctrl, err := paging.New[string, string](o, pageFunc,
			paging.WithObserver(paging.MultiObserver(observers...)),
			paging.WithViewport(vp),
			paging.WithFetchTimeout(opts.fetchTimeout),
		)
		if err != nil {
			return nil, nil, err
		}

		source := scroll.NewSource(scroll.DefaultSourceBuffer)
		if err := ctrl.Start(ctx, source); err != nil {
			return nil, nil, err
		}
		return ctrl, source, nil
	}

	m, err := newModel(factory, cfg.Paging, changes.ch)
	if err != nil {
		return fmt.Errorf("failed to start pagination: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.watch {
		go func() {
			err := config.Watch(ctx, opts.configPath, func(c config.Config, err error) {
				p.Send(configReloadedMsg{cfg: c, err: err})
			})
			if err != nil {
				logger.Warn().Err(err).Msg("Config watch stopped")
			}
		}()
	}

	logger.Info().Str("config", opts.configPath).Int("page_size", m.ctrl.PageSize()).Msg("Demo started")

	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.stop()
	} else {
		m.stop()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("demo error: %w", err)
	}
	return nil
}
