package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/kotare/internal/envfile"
	"github.com/PolarWolf314/kotare/internal/utils"
	"github.com/PolarWolf314/kotare/internal/workflows"
)

var validateEnvFile string

func init() {
	validateCmd.Flags().StringVarP(&validateEnvFile, "file", "f", "", "env file to check (default from .kotare.toml)")
}

// resetValidateCommandState resets the validate command's flag variables for testing.
func resetValidateCommandState() {
	validateEnvFile = ""
}

var validateCmd = &cobra.Command{
	Use:   "validate [patterns...]",
	Short: "Checks .env files for syntax errors",
	Long: `Parses one or more env files and reports every malformed line.
Accepts explicit paths or glob patterns like "config/**/*.env".
Without arguments, checks the default env file.
Exits non-zero when any file has issues, so it can gate CI and hooks.`,
	// Failures are already rendered through the spinner; the returned
	// error exists to set the exit code, not to be printed again.
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting validate command")
		spinner, cleanup := startSpinner("Validating environment files...", verbose)
		defer cleanup()

		config, err := loadProjectConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load project config: %v", err)
		}
		envFile := config.ResolveEnvFile(validateEnvFile)

		result, err := workflows.Validate(cmd.Context(), workflows.ValidateOptions{
			Patterns: args,
			EnvFile:  envFile,
		})
		if err != nil {
			printError("Validation failed", err)
			spinner.FinalMSG = color.RedString("✗") + " Could not validate environment files\n" +
				color.RedString("Error: ") + err.Error()
			return err
		}

		if result.Clean() {
			spinner.FinalMSG = color.GreenString("✓") + fmt.Sprintf(" %d file(s) valid", len(result.Checked)) +
				utils.FormatPaths(result.Checked)
			return nil
		}

		var b strings.Builder
		b.WriteString(color.RedString("✗") + fmt.Sprintf(" Found %d issue(s) in %d file(s)\n",
			len(result.Issues), len(result.Checked)))
		for _, issue := range result.Issues {
			b.WriteString("  " + color.YellowString(issue.Path) + fmt.Sprintf(":%d ", issue.Line))
			switch issue.Kind {
			case envfile.KindEncoding:
				b.WriteString("invalid UTF-8 encoding\n")
			case envfile.KindMissingSeparator:
				b.WriteString("missing '=' separator\n")
			default:
				b.WriteString("malformed line\n")
			}
		}

		Logger.Infof("Validate found %d issues", len(result.Issues))
		spinner.FinalMSG = b.String()
		return fmt.Errorf("%d issue(s) in %d file(s)", len(result.Issues), len(result.Checked))
	},
}
