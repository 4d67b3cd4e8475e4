package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-hyperfortune/pkg/config"
	"github.com/0x0FACED/go-hyperfortune/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "hyperfortune",
	Short: "Voronoi diagrams in the hyperbolic plane",
	Long: `hyperfortune computes Voronoi diagrams of sites in the hyperbolic plane
with a Fortune-style sweep circle, optionally in arbitrary precision.
Sites are read as "theta r" lines in polar coordinates.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Trace every sweep event")
}

// loadConfig читает --config и применяет поверх него явно заданные флаги.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Lookup("input") != nil && flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Lookup("precision") != nil && flags.Changed("precision") {
		cfg.Precision, _ = flags.GetInt("precision")
	}
	if flags.Lookup("center") != nil && flags.Changed("center") {
		cfg.Center, _ = flags.GetInt("center")
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *logger.ZapLogger {
	return logger.New(os.Stderr, cfg.Verbose)
}
