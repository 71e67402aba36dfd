package main

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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/malcolmbastien/Agile-Team-Profiler/cmd/profiler/tui"
	"github.com/malcolmbastien/Agile-Team-Profiler/cmd/profiler/ui"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/config"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/logging"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/perception"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/session"
	"github.com/malcolmbastien/Agile-Team-Profiler/internal/usage"
)

var (
	// Global flags
	configPath  string
	apiKey      string
	modelName   string
	verbose     bool
	metricsAddr string
	timeout     time.Duration

	// Resolved configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "profiler",
	Short: "Agile Team Profiler - score team practices against agile attributes",
	Long: `Agile Team Profiler analyses the practices your team describes.

Each practice is scored by Gemini against a fixed catalog of agile
attributes. The scores add up to a team profile, from which the profiler
can suggest an action plan.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		opts := logging.Options{
			Level:      cfg.Logging.Level,
			DebugMode:  cfg.Logging.DebugMode,
			Dir:        cfg.Logging.Dir,
			Categories: cfg.Logging.Categories,
		}
		if err := logging.Initialize(opts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Base()

		for _, w := range cfg.Warnings() {
			logging.BootWarn("%s", w)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runProfiler,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Gemini model name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultLLMTimeout, "Per-request timeout for Gemini calls")

	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and layers explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		c.LLM.APIKey = apiKey
	}
	if flags.Changed("model") {
		c.LLM.Model = modelName
	}
	if flags.Changed("metrics-addr") {
		c.Metrics.ListenAddr = metricsAddr
	}
	if flags.Changed("timeout") {
		c.LLM.Timeout = timeout.String()
	}
	if verbose {
		c.Logging.DebugMode = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// runProfiler wires the components and runs the TUI until the user quits.
func runProfiler(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tracker, err := usage.NewTracker(reg)
	if err != nil {
		return fmt.Errorf("failed to register usage metrics: %w", err)
	}
	ctx = usage.NewContext(ctx, tracker)

	client, err := perception.NewClient(ctx, clientConfig(cfg))
	if err != nil {
		return err
	}
	ctrl := session.New(client, client.Catalog())

	logger.Info("Starting profiler",
		zap.String("model", client.Model()),
		zap.Duration("timeout", cfg.GetLLMTimeout()),
		zap.String("metrics_addr", cfg.Metrics.ListenAddr))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           metricsHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logging.Boot("metrics endpoint listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		// Quitting the UI stops everything else.
		defer cancel()
		model := tui.New(gctx, ctrl, tui.Options{
			Tracker: tracker,
			Styles:  ui.NewStyles(ui.ThemeFor(cfg.UX.Theme)),
			Model:   client.Model(),
		})
		return tui.Run(gctx, model)
	})

	err = g.Wait()
	stats := tracker.Stats()
	logging.Usage("session totals: requests=%d failures=%d tokens_in=%d tokens_out=%d",
		stats.Requests, stats.Failures, stats.Total.Input, stats.Total.Output)
	return err
}

func clientConfig(c *config.Config) perception.Config {
	pc := perception.DefaultConfig(c.LLM.APIKey)
	pc.Model = c.LLM.Model
	pc.BaseURL = c.LLM.BaseURL
	pc.Timeout = c.GetLLMTimeout()
	pc.Temperature = c.LLM.Temperature
	return pc
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}
