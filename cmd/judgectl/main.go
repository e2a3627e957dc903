// Command judgectl judges local solution files against a sandbox from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
)

var (
	envFile   string
	pistonURL string
	verbose   bool

	logger primary.Logger = logging.NewNopLogger()
)

var rootCmd = &cobra.Command{
	Use:           "judgectl",
	Short:         "Judge solutions against the code execution sandbox",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
		if verbose {
			zl, err := logging.NewZapLoggerWithConfig(&config.LogConfig{Level: "debug", Format: "console"})
			if err != nil {
				return err
			}
			logger = zl
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file")
	rootCmd.PersistentFlags().StringVar(&pistonURL, "piston", "", "sandbox base URL (overrides PISTON_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(runCmd, languagesCmd, tokenCmd)
}

// executorConfig reads the environment and applies flag overrides
func executorConfig() *config.ExecutorConfig {
	cfg := config.NewExecutorConfig()
	if pistonURL != "" {
		cfg.PistonURL = pistonURL
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
