package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by run and replicate
	seed        int64   // Seed for the arrival and service streams
	horizon     float64 // Total virtual duration to simulate
	serviceRate float64 // Exponential service rate (completions per unit time)
	configPath  string  // Optional YAML file with service_rate, horizon, seed
	logLevel    string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "lossq",
	Short: "Simulator for a single-channel queuing system with refusals",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies --log to the package-level logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// registerSimFlags attaches the simulation parameters to a subcommand.
func registerSimFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for random arrival and service generation")
	c.Flags().Float64Var(&horizon, "horizon", 70, "Total simulated duration")
	c.Flags().Float64Var(&serviceRate, "service-rate", 0.5, "Exponential service rate (mean completions per unit time)")
	c.Flags().StringVar(&configPath, "config", "", "Path to YAML config (service_rate, horizon, seed); explicit flags win")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
