package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/cache"
	"github.com/ytget/timetable-viewer/internal/client"
	"github.com/ytget/timetable-viewer/internal/config"
	"github.com/ytget/timetable-viewer/internal/engine"
	"github.com/ytget/timetable-viewer/internal/logging"
	"github.com/ytget/timetable-viewer/internal/textview"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// cli holds the flag values and the state built in PersistentPreRunE
type cli struct {
	configPath      string
	envFile         string
	serverURL       string
	refreshInterval time.Duration
	requestTimeout  time.Duration
	logLevel        string
	logFormat       string
	noColor         bool
	verbose         bool

	cfg    *config.File
	logger *zap.Logger
	store  *cache.Store
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", textview.Sanitize(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "timetable",
		Short: "Terminal client for the school timetabling server",
		Long: `timetable shows the lessons of a timetabling server pivoted by room,
teacher and student group, starts the solver and deletes rooms, timeslots
and lessons.

Run "timetable watch" for the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.DefaultPath(), "path to the YAML config file")
	flags.StringVar(&c.envFile, "env-file", ".env", "dotenv file with TIMETABLE_* variables")
	flags.StringVar(&c.serverURL, "server", "", "timetable server URL (overrides config)")
	flags.DurationVar(&c.refreshInterval, "interval", 0, "polling interval while solving (overrides config)")
	flags.DurationVar(&c.requestTimeout, "timeout", 0, "HTTP request timeout (overrides config)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: console or json (overrides config)")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colors")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.newShowCmd(),
		c.newWatchCmd(),
		c.newSolveCmd(),
		c.newDeleteCmd(),
		c.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// init loads the config file, applies flag overrides and builds the logger
func (c *cli) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.URL = c.serverURL
	}
	if flags.Changed("interval") {
		cfg.Refresh.Interval = c.refreshInterval.String()
	}
	if flags.Changed("timeout") {
		cfg.Server.Timeout = c.requestTimeout.String()
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = c.logFormat
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

func (c *cli) newClient() (*client.Client, error) {
	return client.New(c.cfg.Server.URL,
		client.WithTimeout(c.cfg.RequestTimeout()),
		client.WithLogger(c.logger.Named("client")))
}

func (c *cli) newEngine(view engine.View) (*engine.Engine, error) {
	httpClient, err := c.newClient()
	if err != nil {
		return nil, err
	}
	var api client.API = httpClient
	if store := c.openCache(); store != nil {
		api = cache.NewRecorder(api, store, c.cacheKey(), c.logger.Named("cache"))
	}
	return engine.New(api,
		engine.WithLogger(c.logger.Named("engine")),
		engine.WithInterval(c.cfg.RefreshInterval()),
		engine.WithView(view)), nil
}

// openCache opens the snapshot cache once per command. The cache is best
// effort: when it cannot be opened the command runs without it.
func (c *cli) openCache() *cache.Store {
	if c.store != nil || !c.cfg.Cache.Enabled {
		return c.store
	}
	store, err := cache.Open(c.cfg.Cache.Path)
	if err != nil {
		c.logger.Warn("snapshot cache disabled", zap.String("path", c.cfg.Cache.Path), zap.Error(err))
		return nil
	}
	c.store = store
	return store
}

func (c *cli) closeCache() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil && c.logger != nil {
		c.logger.Warn("failed to close snapshot cache", zap.Error(err))
	}
	c.store = nil
}

// cacheKey identifies the configured server in the snapshot cache
func (c *cli) cacheKey() string {
	return strings.TrimRight(strings.TrimSpace(c.cfg.Server.URL), "/")
}

func (c *cli) styles() textview.Styles {
	if c.noColor {
		return textview.PlainStyles()
	}
	return textview.DefaultStyles()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timetable %s\n", version)
		},
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
