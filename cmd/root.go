package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lukman83/lcsc-scrap/config"
	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "lcsc",
	Short: "LCSC Scrap - LCSC parts lookup CLI & MCP server",
	Long: "A Go-based CLI tool and MCP server for looking up LCSC electronic components:\n" +
		"product details, tiered pricing, order cost and keyword search.",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("fetcher", "", "Fetch backend: http, browser (default from $LCSC_FETCHER or http)")
	rootCmd.PersistentFlags().String("delay-profile", "", "Delay between requests: off, aggressive, normal, cautious")
	rootCmd.PersistentFlags().Bool("respect-robots", false, "Respect robots.txt rules")
	rootCmd.PersistentFlags().String("proxies", "", "Comma-separated proxy URLs (http, https, socks5)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// initConfig loads the environment and applies any flags the user set.
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fetcher") {
		loaded.Fetcher, _ = flags.GetString("fetcher")
	}
	if flags.Changed("delay-profile") {
		loaded.DelayProfile, _ = flags.GetString("delay-profile")
	}
	if flags.Changed("respect-robots") {
		loaded.RespectRobots, _ = flags.GetBool("respect-robots")
	}
	if flags.Changed("proxies") {
		loaded.Proxies, _ = flags.GetString("proxies")
	}
	if flags.Changed("log-level") {
		loaded.LogLevel, _ = flags.GetString("log-level")
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	log, err := logging.New(loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg, logger = loaded, log
	return nil
}

// newClient builds the LCSC client from the loaded config.
func newClient() (*lcsc.Client, error) {
	return lcsc.NewFromConfig(cfg, logger)
}

// searchDefaults returns the configured search filter and ordering.
func searchDefaults() lcsc.SearchOpts {
	return lcsc.SearchOpts{MinStock: lcsc.StockFloor(cfg.MinStock), SortBy: cfg.SortBy}
}
