package cmd

import (
	logger "github.com/PolarWolf314/kotare/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	EnvCmd = &cobra.Command{
		Use:   "env",
		Short: "Synchronize .env files with a remote secret store",
		Long:  `Provides pushing, pulling, drift inspection, and validation of .env files against a Bitwarden Secrets Manager project.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing env command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	EnvCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	EnvCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	EnvCmd.AddCommand(pushCmd)
	EnvCmd.AddCommand(pullCmd)
	EnvCmd.AddCommand(statusCmd)
	EnvCmd.AddCommand(validateCmd)
	EnvCmd.AddCommand(listCmd)
	EnvCmd.AddCommand(initCmd)
}

// Helper functions for testing

// GetEnvCmd returns the EnvCmd for testing.
func GetEnvCmd() *cobra.Command {
	return EnvCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetPushCommandState()
	resetPullCommandState()
	resetStatusCommandState()
	resetValidateCommandState()
	resetListCommandState()
	resetInitCommandState()
	resetEnvCobraFlagState()
}

// resetEnvCobraFlagState resets the flag state for all env subcommands to prevent test pollution.
func resetEnvCobraFlagState() {
	for _, c := range EnvCmd.Commands() {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
