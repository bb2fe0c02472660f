package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/matchapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	upstreamURL string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "resume_matcher",
		Short:         "Resume Matcher web UI and job search CLI",
		Long:          "Resume Matcher searches job listings and scores them against an uploaded PDF resume, from a browser or the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&opts.upstreamURL, "upstream", "", "Base URL of the search and matching service")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(newServeCmd(opts), newSearchCmd(opts), newMatchCmd(opts))
	return rootCmd
}

// runtime is the resolved configuration plus the collaborators built from it.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	client *matchapi.Client
}

// loadRuntime resolves config (defaults, file, env, then flags) and builds the
// logger and upstream client.
func loadRuntime(opts *globalOptions) (*runtime, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.upstreamURL != "" {
		cfg.UpstreamURL = opts.upstreamURL
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
	})
	if err != nil {
		return nil, err
	}

	client, err := matchapi.NewClient(cfg.UpstreamURL, &matchapi.Options{
		Timeout:   time.Duration(cfg.RequestTimeout),
		UserAgent: matchapi.DefaultUserAgent,
		Logger:    logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create upstream client: %w", err)
	}

	return &runtime{cfg: cfg, logger: logger, client: client}, nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}
