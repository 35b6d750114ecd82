package cli

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"plant-irrigation-api/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "irrigation-api",
	Short: "Plant irrigation coordination service",
	Long: `Coordinates watering for plant-monitoring boards.

Boards are bound to plants, push moisture, temperature and light readings,
and poll for a watering command decided from the plant's mode and targets.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
}

// loadConfig reads the configuration and sets the log level from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	level := cfg.FiberLogLevel()
	if verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)

	return cfg, nil
}
