package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/utils"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var (
	statusProject    string
	statusEnvFile    string
	statusShowValues bool
)

func init() {
	statusCmd.Flags().StringVarP(&statusProject, "project", "p", "", "remote project name or ID")
	statusCmd.Flags().StringVarP(&statusEnvFile, "file", "f", "", "env file to compare (default from .kotare.toml)")
	statusCmd.Flags().BoolVar(&statusShowValues, "show-values", false, "print differing values instead of key names only")
}

// resetStatusCommandState resets the status command's flag variables for testing.
func resetStatusCommandState() {
	statusProject = ""
	statusEnvFile = ""
	statusShowValues = false
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows drift between the local .env file and the remote project",
	Long: `Compares the local env file against the remote project and reports keys
that exist on only one side or hold different values. Status never
changes anything on either side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Checking sync status...", verbose)
		defer cleanup()

		config, err := loadProjectConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load project config: %v", err)
		}

		project, hint := requireProject(config, statusProject)
		if project == "" {
			spinner.FinalMSG = hint
			return nil
		}
		envFile := config.ResolveEnvFile(statusEnvFile)
		showValues := statusShowValues || config.Sync.ShowValues
		Logger.Debugf("Project: %s, env file: %s", project, envFile)

		p, err := buildProvider(cmd.Context(), config)
		if err != nil {
			printError("Failed to connect to the secret store", err)
			spinner.FinalMSG = color.RedString("✗") + " Could not authenticate with the secret store\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		result, err := workflows.Status(cmd.Context(), p, workflows.StatusOptions{
			Project: project,
			EnvFile: envFile,
		})
		if err != nil {
			if errors.Is(err, kerrors.ErrProjectNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(project) + " was not found\n" +
					color.CyanString("→") + " Run " + color.YellowString("kotare env list") + " to see available projects"
				return nil
			}
			printError("Status failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to check status of " + color.YellowString(envFile) + "\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		if result.InSync() {
			spinner.FinalMSG = color.GreenString("✓") + " " + color.YellowString(envFile) + " is in sync with " +
				color.CyanString(result.Project) + fmt.Sprintf(" (%d keys)", result.RemoteCount)
			return nil
		}

		var b strings.Builder
		b.WriteString(color.YellowString("⚠") + " " + color.YellowString(envFile) + " has drifted from " +
			color.CyanString(result.Project) + "\n")
		if !result.FileExists {
			b.WriteString(color.CyanString("→") + " " + color.YellowString(envFile) + " does not exist; comparing against an empty file\n")
		}

		report := result.Report
		if len(report.LocalOnly) > 0 {
			b.WriteString("  Only local: " + utils.FormatKeys(report.LocalOnly))
			b.WriteString(color.CyanString("→") + " Run " + color.YellowString("kotare env push") + " to upload them\n")
		}
		if len(report.RemoteOnly) > 0 {
			b.WriteString("  Only remote: " + utils.FormatKeys(report.RemoteOnly))
			b.WriteString(color.CyanString("→") + " Run " + color.YellowString("kotare env pull --merge") + " to fetch them\n")
		}
		if len(report.Mismatched) > 0 {
			b.WriteString("  Different values:\n")
			for _, m := range report.Mismatched {
				if showValues {
					b.WriteString("    - " + m.Key + ": local=" + m.Local + " remote=" + m.Remote + "\n")
				} else {
					b.WriteString("    - " + m.Key + "\n")
				}
			}
			if !showValues {
				b.WriteString(color.CyanString("→") + " Use " + color.YellowString("--show-values") + " to see the differing values\n")
			}
		}

		Logger.Infof("Status: %d local-only, %d remote-only, %d mismatched",
			len(report.LocalOnly), len(report.RemoteOnly), len(report.Mismatched))
		spinner.FinalMSG = b.String()
		return nil
	},
}
