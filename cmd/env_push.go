package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/utils"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var (
	pushProject   string
	pushEnvFile   string
	pushOverwrite bool
	pushDryRun    bool
)

func init() {
	pushCmd.Flags().StringVarP(&pushProject, "project", "p", "", "remote project name or ID")
	pushCmd.Flags().StringVarP(&pushEnvFile, "file", "f", "", "env file to push, or - for stdin (default from .kotare.toml)")
	pushCmd.Flags().BoolVar(&pushOverwrite, "overwrite", false, "update remote values for keys that already exist")
	pushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "preview the push without writing to the remote store")
}

// resetPushCommandState resets the push command's flag variables for testing.
func resetPushCommandState() {
	pushProject = ""
	pushEnvFile = ""
	pushOverwrite = false
	pushDryRun = false
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Uploads local .env entries to the remote project",
	Long: `Parses the local env file and creates every key in the remote project.
Keys that already exist remotely are skipped unless --overwrite is given.
Pass --file - to push entries piped on stdin instead of a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting push command")
		spinner, cleanup := startSpinner("Pushing environment secrets...", verbose)
		defer cleanup()

		config, err := loadProjectConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load project config: %v", err)
		}

		project, hint := requireProject(config, pushProject)
		if project == "" {
			spinner.FinalMSG = hint
			return nil
		}
		envFile := config.ResolveEnvFile(pushEnvFile)
		Logger.Debugf("Project: %s, env file: %s", project, envFile)

		p, err := buildProvider(cmd.Context(), config)
		if err != nil {
			printError("Failed to connect to the secret store", err)
			spinner.FinalMSG = color.RedString("✗") + " Could not authenticate with the secret store\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		result, err := workflows.Push(cmd.Context(), p, workflows.PushOptions{
			Project:   project,
			EnvFile:   envFile,
			Overwrite: pushOverwrite,
			DryRun:    pushDryRun,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrEnvFileNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Env file " + color.YellowString(envFile) + " does not exist"
				return nil
			}
			if errors.Is(err, kerrors.ErrProjectNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(project) + " was not found\n" +
					color.CyanString("→") + " Run " + color.YellowString("kotare env list") + " to see available projects"
				return nil
			}
			printError("Push failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to push " + color.YellowString(envFile) + "\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		if result.Total() == 0 {
			spinner.FinalMSG = color.GreenString("✓") + " Nothing to push: " + color.YellowString(envFile) + " has no entries"
			return nil
		}

		prefix := color.GreenString("✓") + " Pushed " + color.YellowString(envFile) + " to " + color.CyanString(result.Project)
		if result.DryRun {
			prefix = color.YellowString("[dry-run]") + " Would push " + color.YellowString(envFile) + " to " + color.CyanString(result.Project)
		}

		finalMessage := prefix + "\n"
		if len(result.Created) > 0 {
			finalMessage += "  Created: " + utils.FormatKeys(result.Created)
		}
		if len(result.Updated) > 0 {
			finalMessage += "  Updated: " + utils.FormatKeys(result.Updated)
		}
		if len(result.Skipped) > 0 {
			finalMessage += "  Skipped (already remote): " + utils.FormatKeys(result.Skipped) +
				color.CyanString("→") + " Use " + color.YellowString("--overwrite") + " to update them"
		}

		Logger.Infof("Push completed: %d created, %d updated, %d skipped",
			len(result.Created), len(result.Updated), len(result.Skipped))
		spinner.FinalMSG = finalMessage
		return nil
	},
}
