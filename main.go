package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/kotare/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kotare",
	Short: "Kōtare - A CLI for synchronizing .env files with a remote secret store.",
	Long: `Kōtare keeps local .env files and Bitwarden Secrets Manager projects in
sync, so teams stop passing secrets around in chat messages.

Features:
  - Push local .env entries to a remote project
  - Pull remote secrets into a local .env file without losing local edits
  - Inspect drift between local and remote before touching either side
  - Validate .env files for syntax errors

Usage:
  kotare <command> [flags]

Available Commands:
  env    Synchronize .env files with a remote project

Run 'kotare help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Kōtare! Run 'kotare --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.EnvCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
