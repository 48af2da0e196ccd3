package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var (
	pullProject string
	pullEnvFile string
	pullForce   bool
	pullMerge   bool
	pullDryRun  bool
)

func init() {
	pullCmd.Flags().StringVarP(&pullProject, "project", "p", "", "remote project name or ID")
	pullCmd.Flags().StringVarP(&pullEnvFile, "file", "f", "", "env file to write (default from .kotare.toml)")
	pullCmd.Flags().BoolVar(&pullForce, "force", false, "replace the whole file with the remote contents")
	pullCmd.Flags().BoolVar(&pullMerge, "merge", false, "fold remote keys in, keeping local values for existing keys")
	pullCmd.Flags().BoolVar(&pullDryRun, "dry-run", false, "preview the pull without writing the file")
}

// resetPullCommandState resets the pull command's flag variables for testing.
func resetPullCommandState() {
	pullProject = ""
	pullEnvFile = ""
	pullForce = false
	pullMerge = false
	pullDryRun = false
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Writes remote secrets into the local .env file",
	Long: `Fetches the remote project's secrets and writes them to the local env file.
An existing file is never touched without consent: --force replaces it,
--merge combines it with the remote while keeping local values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")
		spinner, cleanup := startSpinner("Pulling environment secrets...", verbose)
		defer cleanup()

		config, err := loadProjectConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load project config: %v", err)
		}

		project, hint := requireProject(config, pullProject)
		if project == "" {
			spinner.FinalMSG = hint
			return nil
		}
		envFile := config.ResolveEnvFile(pullEnvFile)
		Logger.Debugf("Project: %s, env file: %s", project, envFile)

		p, err := buildProvider(cmd.Context(), config)
		if err != nil {
			printError("Failed to connect to the secret store", err)
			spinner.FinalMSG = color.RedString("✗") + " Could not authenticate with the secret store\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		result, err := workflows.Pull(cmd.Context(), p, workflows.PullOptions{
			Project: project,
			EnvFile: envFile,
			Force:   pullForce,
			Merge:   pullMerge,
			DryRun:  pullDryRun,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrFileExists) {
				spinner.FinalMSG = color.RedString("✗") + " " + color.YellowString(envFile) + " already exists\n" +
					color.CyanString("→") + " Use " + color.YellowString("--merge") + " to combine with remote, or " +
					color.YellowString("--force") + " to replace it"
				return nil
			}
			if errors.Is(err, kerrors.ErrProjectNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(project) + " was not found\n" +
					color.CyanString("→") + " Run " + color.YellowString("kotare env list") + " to see available projects"
				return nil
			}
			printError("Pull failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to pull into " + color.YellowString(envFile) + "\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		if result.DryRun {
			spinner.FinalMSG = color.YellowString("[dry-run]") + " Would write " +
				fmt.Sprintf("%d keys", result.Written) + " to " + color.YellowString(envFile)
			return nil
		}

		finalMessage := color.GreenString("✓") + " Pulled " + color.CyanString(result.Project) + " into " +
			color.YellowString(envFile) + fmt.Sprintf(" (%d keys)", result.Written) + "\n"
		if len(result.Kept) > 0 {
			finalMessage += color.CyanString("→") + fmt.Sprintf(" Kept %d local values that differ from remote\n", len(result.Kept))
		}

		Logger.Infof("Pull completed: %d keys written", result.Written)
		spinner.FinalMSG = finalMessage
		return nil
	},
}
