package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/benjipeng/promptrun/internal/config"
	"github.com/benjipeng/promptrun/internal/errors"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile    string
	verbose    bool
	modelFlag  string
	systemFlag string
	logger     *logrus.Logger
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if structured, ok := err.(*errors.Error); ok && verbose {
			fmt.Fprint(os.Stderr, structured.DetailedString())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptrun [message...]",
	Short: "promptrun - one-shot LLM prompt runner",
	Long: `promptrun binds an agent to a model and a fixed system prompt,
sends a single message, and prints the response.

The message comes from the arguments, or from stdin when piped.
Exactly one request is issued per invocation; nothing is stored.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger
		logger = logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
	RunE:          runOneShot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.promptrun/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "provider-qualified model (e.g. google-gla:gemini-1.5-flash)")
	rootCmd.Flags().StringVarP(&systemFlag, "system", "s", "", "system prompt for this run")

	rootCmd.SetVersionTemplate(`promptrun {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(configCmd)
}
