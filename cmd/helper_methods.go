package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/PolarWolf314/kotare/internal/configs"
	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/provider"
	"github.com/PolarWolf314/kotare/internal/ui"
	"github.com/PolarWolf314/kotare/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag from the env command.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// printError logs an error with a consistent prefix.
func printError(message string, err error) {
	Logger.Errorf("%s: %v", message, err)
}

// loadProjectConfig loads .kotare.toml if the repository has one.
// An uninitialized repository yields an empty config so commands can
// still run on flags alone.
func loadProjectConfig() (*configs.ProjectConfig, error) {
	if err := configs.InitProjectSettings(); err != nil {
		return nil, err
	}

	config, err := configs.LoadProjectConfig()
	if err != nil {
		if errors.Is(err, kerrors.ErrNoProject) {
			return &configs.ProjectConfig{}, nil
		}
		return nil, err
	}
	return config, nil
}

// buildProvider constructs the Bitwarden provider from the environment
// and project config. When no token is in the environment and stdin is
// a terminal, the user is prompted without echo.
func buildProvider(ctx context.Context, config *configs.ProjectConfig) (provider.SecretsProvider, error) {
	token := configs.AccessToken()
	if token == "" && utils.IsTerminal() {
		raw, err := utils.ReadSecretPrompt("Access token: ")
		if err != nil {
			return nil, err
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return nil, fmt.Errorf("no access token: set KOTARE_ACCESS_TOKEN or BWS_ACCESS_TOKEN: %w", kerrors.ErrAuthFailed)
	}

	return provider.NewBitwardenProvider(ctx, provider.BitwardenConfig{
		AccessToken: token,
		APIURL:      config.Server.APIURL,
		IdentityURL: config.Server.IdentityURL,
	})
}

// requireProject resolves the project name from flag and config,
// producing the FinalMSG hint when neither is set.
func requireProject(config *configs.ProjectConfig, flagValue string) (string, string) {
	project := config.ResolveProjectName(flagValue)
	if project != "" {
		return project, ""
	}

	hint := color.RedString("✗") + " No project selected\n" +
		color.CyanString("→") + " Pass " + color.YellowString("--project") + " or run " + color.YellowString("kotare env init") + " to pin a default"
	return "", hint
}
