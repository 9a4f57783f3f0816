package cmd

import (
	"log/slog"
	"os"

	"github.com/nikogura/content-qa/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "content-qa",
	Short: "Check and repair generated SEO articles",
	Long: `content-qa runs a fixed battery of quality checks over generated HTML articles
and repairs the problems that do not need new content: duplicated key takeaways,
FAQ and conclusion sections, and machine-sounding phrases.

Articles are read from a file, standard input ("-") or an http(s) URL.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/content-qa/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger returns a stderr logger at debug level in verbose mode and warn level otherwise.
func newLogger() (logger *slog.Logger) {
	level := slog.LevelWarn
	if getVerbose() {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return logger
}

// loadConfig loads the config named by --config, or the default one.
func loadConfig(logger *slog.Logger) (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}

	logger.Debug("loaded config",
		"path", configPathForLog(),
		"current_year", cfg.CurrentYear,
		"format", cfg.Format,
		"extra_banned_phrases", len(cfg.ExtraBannedPhrases),
	)

	return cfg, err
}

func configPathForLog() (path string) {
	path = getConfigFile()
	if path == "" {
		path = config.DefaultPath()
	}
	return path
}
