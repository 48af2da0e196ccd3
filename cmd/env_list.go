package cmd

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/ui"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var listProject string

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "list the secret keys of one project")
}

// resetListCommandState resets the list command's flag variables for testing.
func resetListCommandState() {
	listProject = ""
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists remote projects, or the keys within one",
	Long: `Without flags, lists every project the access token can reach.
With --project, lists the secret key names in that project. Values are
never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		spinner, cleanup := startSpinner("Listing remote projects...", verbose)
		defer cleanup()

		config, err := loadProjectConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load project config: %v", err)
		}

		p, err := buildProvider(cmd.Context(), config)
		if err != nil {
			printError("Failed to connect to the secret store", err)
			spinner.FinalMSG = color.RedString("✗") + " Could not authenticate with the secret store\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		result, err := workflows.List(cmd.Context(), p, workflows.ListOptions{Project: listProject})
		if err != nil {
			if errors.Is(err, kerrors.ErrProjectNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Project " + color.CyanString(listProject) + " was not found"
				return nil
			}
			printError("List failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to list projects\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		var b strings.Builder
		if listProject == "" {
			if len(result.Projects) == 0 {
				spinner.FinalMSG = color.YellowString("⚠") + " No projects accessible with this token"
				return nil
			}
			b.WriteString(color.GreenString("✓") + " Available projects:\n")
			for _, proj := range result.Projects {
				b.WriteString("    - " + ui.Highlight.Sprint(proj.Name) + " " + ui.Muted.Sprint(proj.ID) + "\n")
			}
		} else {
			if len(result.Keys) == 0 {
				spinner.FinalMSG = color.YellowString("⚠") + " Project " + color.CyanString(result.Project) + " has no secrets"
				return nil
			}
			b.WriteString(color.GreenString("✓") + " Keys in " + color.CyanString(result.Project) + ":\n")
			for _, key := range result.Keys {
				b.WriteString("    - " + ui.Highlight.Sprint(key) + "\n")
			}
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
