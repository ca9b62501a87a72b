// Package cmd implements the searchselect CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/searchselect/internal/api/client"
	"github.com/donaldgifford/searchselect/internal/config"
	"github.com/donaldgifford/searchselect/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "searchselect",
		Short: "Search and select records from the application search API",
		Long: "searchselect is a terminal client for the /api/search endpoints.\n" +
			"It runs one-shot searches, lists suggestions and stats, and opens\n" +
			"an interactive picker that prints the final selection.",
		SilenceUsage:       true,
		PersistentPostRunE: writeMetrics,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.searchselect.yaml)")
	rootCmd.PersistentFlags().
		String("server", "", "API server URL (overrides server.url from the config)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String("metrics-file", "", "write Prometheus metrics here on exit (node_exporter textfile format)")

	// The structured config owns the "server" key, so flags bind to flat keys.
	cobra.CheckErr(viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("metrics_file", rootCmd.PersistentFlags().Lookup("metrics-file")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(pickCmd())
	rootCmd.AddCommand(suggestCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(typesCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".searchselect")
	}

	viper.SetEnvPrefix("SEARCHSELECT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: the config file when one
// was found, otherwise defaults, then flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if u := viper.GetString("server_url"); u != "" {
		cfg.Server.URL = u
	}
	if lvl := viper.GetString("log_level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, nil
}

// setup loads the config and a stderr logger for the non-interactive commands.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

func newClient(cfg *config.Config, log *slog.Logger) *apiclient.Client {
	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.Server.Timeout),
		apiclient.WithUserAgent(cfg.Server.UserAgent + "/" + Version),
		apiclient.WithLogger(log),
	}
	if rl := cfg.Server.RateLimit; rl.PerSecond > 0 {
		opts = append(opts, apiclient.WithRateLimiter(apiclient.NewRateLimiter(rl.PerSecond, rl.Burst)))
	}
	return apiclient.New(cfg.Server.URL, opts...)
}

// writeMetrics dumps the default registry for the textfile collector. A CLI
// process is too short-lived to be scraped.
func writeMetrics(_ *cobra.Command, _ []string) error {
	path := viper.GetString("metrics_file")
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
