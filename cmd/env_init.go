package cmd

import (
	"errors"
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var (
	initProject string
	initEnvFile string
	initForce   bool
)

func init() {
	initCmd.Flags().StringVarP(&initProject, "project", "p", "", "remote project to pin as the default (default: directory name)")
	initCmd.Flags().StringVarP(&initEnvFile, "file", "f", "", "env file path to record (default .env)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .kotare.toml")
}

// resetInitCommandState resets the init command's flag variables for testing.
func resetInitCommandState() {
	initProject = ""
	initEnvFile = ""
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a .kotare.toml for this repository",
	Long: `Creates a .kotare.toml in the current directory, pinning it to a remote
project so push, pull, and status don't need --project every time.
Without --project, the directory's name is used as the project name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing Kōtare...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Project: initProject,
			EnvFile: initEnvFile,
			Force:   initForce,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrConfigExists) {
				spinner.FinalMSG = color.RedString("✗") + " This repository is already initialized\n" +
					color.CyanString("→") + " Use " + color.YellowString("--force") + " to overwrite " + color.YellowString(".kotare.toml")
				return nil
			}
			printError("Init failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to initialize\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		// Stop spinner before printing the banner.
		spinner.Stop()

		fmt.Println()
		banner := figure.NewColorFigure("Kotare", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		finalMessage := color.GreenString("✓") + " Initialized! " + color.YellowString(result.ConfigPath) +
			" pins this repository to " + color.CyanString(result.Project) + "\n" +
			color.CyanString("→") + " Set " + color.YellowString("KOTARE_ACCESS_TOKEN") + " with your machine access token\n" +
			color.CyanString("→") + " Run " + color.YellowString("kotare env pull") + " to fetch secrets into " + color.YellowString(result.EnvFile) + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("kotare env push") + " to upload an existing file"

		spinner.FinalMSG = finalMessage
		return nil
	},
}
