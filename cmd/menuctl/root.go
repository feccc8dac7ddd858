package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/server"
)

// annotationWritesCache marks commands allowed to create and write the menu cache.
const annotationWritesCache = "writes-cache"

// cli carries flag values and the components built for one invocation.
type cli struct {
	envFile   string
	provider  string
	timezone  string
	clock     string
	cache     string
	cachePath string
	bundled   string
	at        string
	logLevel  string
	asJSON    bool

	now   time.Time
	comps *server.Components
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "menuctl",
		Short: "Inspect the campus dining menu",
		Long: `Inspect the campus dining menu from the terminal.

Menus resolve from the remote feed, the local cache or the bundled snapshot,
the same way the HTTP service does. Configuration comes from the environment
(and an optional .env file); flags override it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", "", "dotenv file to load (default .env)")
	flags.StringVar(&c.provider, "provider", "", "menu provider: feed, or bundled for offline use")
	flags.StringVar(&c.timezone, "tz", "", "IANA timezone for meal windows")
	flags.StringVar(&c.clock, "clock", "", "clock style: 12h, 24h or compact")
	flags.StringVar(&c.cache, "cache", "", "cache backend: memory, file or sqlite")
	flags.StringVar(&c.cachePath, "cache-path", "", "cache directory or sqlite file")
	flags.StringVar(&c.bundled, "bundled", "", "bundled menu file overriding the embedded snapshot")
	flags.StringVar(&c.at, "at", "", "evaluate at this RFC3339 instant instead of now")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&c.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(
		newDayCmd(c),
		newBoardCmd(c),
		newNextCmd(c),
		newWeeksCmd(c),
		newRefreshCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg := c.apply(config.Load())
	cfg.Cache.ReadOnly = cmd.Annotations[annotationWritesCache] == ""

	c.now = time.Now()
	if c.at != "" {
		at, err := time.Parse(time.RFC3339, c.at)
		if err != nil {
			return fmt.Errorf("invalid --at value %q: %w", c.at, err)
		}
		c.now = at
	}

	logger := logging.NewLogger(logging.Config{
		Level:   c.logLevel,
		Service: "menuctl",
		Output:  cmd.ErrOrStderr(),
	})
	comps, err := server.BuildComponents(c.context(cmd), cfg, logger, nil)
	if err != nil {
		return err
	}
	c.comps = comps
	return nil
}

// apply overlays flags that were set on the environment configuration.
func (c *cli) apply(cfg config.Config) config.Config {
	if c.provider != "" {
		cfg.Provider = c.provider
	}
	if c.timezone != "" {
		cfg.Timezone = c.timezone
	}
	if c.clock != "" {
		cfg.ClockStyle = c.clock
	}
	if c.cache != "" {
		cfg.Cache.Backend = c.cache
	}
	if c.cachePath != "" {
		cfg.Cache.Path = c.cachePath
	}
	if c.bundled != "" {
		cfg.Feed.BundledPath = c.bundled
	}
	return cfg
}

func (c *cli) context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// run wraps a subcommand body so the components are released whether or not it fails.
func (c *cli) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer c.comps.Close()
		return fn(cmd, args)
	}
}
