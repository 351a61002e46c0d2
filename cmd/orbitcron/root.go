package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the orbitcron command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "orbitcron",
		Short: "Cron-style job scheduler driven by an external trigger",
		Long: `orbitcron keeps a registry of jobs scheduled by five-field cron expressions
and runs the due ones whenever it is triggered: by an HTTP request to the
trigger endpoint, by the built-in once-a-minute ticker, or by "orbitcron tick".

Examples:
  orbitcron serve -c orbitcron.yaml          # HTTP trigger endpoint
  orbitcron serve --tick                     # HTTP endpoint plus internal ticker
  orbitcron tick --force --job backup        # run one job now
  orbitcron validate "*/15 9-17 * * mon-fri" --next 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newRunCommand(opts))
	rootCmd.AddCommand(newTickCommand(opts))
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newListCommand(opts))

	return rootCmd
}
