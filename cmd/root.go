package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/bookbot/internal/config"
	"github.com/lepinkainen/bookbot/internal/fileutil"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// stdout receives rendered results; tests replace it.
var stdout io.Writer = os.Stdout

// CLI represents the complete command structure for the bookbot application
type CLI struct {
	// Global flags
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Config  string `help:"Path to config file (defaults to ./config.yaml when present)" type:"path"`

	// Cache flags
	CacheBackend    string `help:"Cache backend: json, sqlite or bolt (overrides cache.backend)"`
	CacheFile       string `help:"Path to the cache file (overrides cache.file)"`
	NoCacheFailures bool   `help:"Do not cache the empty result of a failed lookup"`

	Search SearchCmd `cmd:"" help:"Search Google Books, answering from the cache when possible"`
	Ping   PingCmd   `cmd:"" help:"Check that the Google Books API is reachable with the configured key"`
	Cache  CacheCmd  `cmd:"" help:"Inspect and manage the result cache"`
}

// Execute runs the Kong-based CLI
func Execute() {
	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("bookbot"),
		kong.Description("A cached Google Books search tool."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)

	if err := initConfig(cli.Config); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// initConfig registers defaults and reads the optional YAML config file.
// A missing default config file is not an error; an explicitly named one must exist.
func initConfig(configFile string) error {
	config.SetDefaults()

	if configFile != "" {
		if !fileutil.FileExists(configFile) {
			return fmt.Errorf("config file %s does not exist", configFile)
		}
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	slog.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	return nil
}

func updateGlobalConfig(cli *CLI) {
	// Only flags that were given override the config file
	if cli.CacheBackend != "" {
		viper.Set(config.KeyCacheBackend, cli.CacheBackend)
	}
	if cli.CacheFile != "" {
		viper.Set(config.KeyCacheFile, cli.CacheFile)
	}
	if cli.NoCacheFailures {
		viper.Set(config.KeyCacheFailures, false)
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
