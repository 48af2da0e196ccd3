// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running commands against a buffer.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/kotare/internal/configs"
	logger "github.com/PolarWolf314/kotare/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment sets up the test environment with temporary directories.
func setupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserKotareSettings = originalUserSettings
		configs.ProjectKotareSettings = &configs.ProjectSettings{
			ProjectName: "",
			ProjectPath: "",
		}
	})

	// Override user settings to use temp directory
	configs.UserKotareSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempUserDir, "config"),
		UserDataPath:    filepath.Join(tempUserDir, "data"),
		Username:        "testuser",
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance for testing with the specified args and flags.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command (needed for the real command implementations)
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	// Create a fresh root command for this test
	rootCmd := &cobra.Command{
		Use:   "kotare",
		Short: "Kōtare - A CLI for synchronizing .env files with a remote secret store.",
	}

	// Use the actual EnvCmd but reset its state
	rootCmd.AddCommand(EnvCmd)

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
		EnvCmd.SetOut(stdout)
		// Set output on all subcommands
		pushCmd.SetOut(stdout)
		pullCmd.SetOut(stdout)
		statusCmd.SetOut(stdout)
		validateCmd.SetOut(stdout)
		listCmd.SetOut(stdout)
		initCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
		EnvCmd.SetErr(stderr)
		// Set error output on all subcommands
		pushCmd.SetErr(stderr)
		pullCmd.SetErr(stderr)
		statusCmd.SetErr(stderr)
		validateCmd.SetErr(stderr)
		listCmd.SetErr(stderr)
		initCmd.SetErr(stderr)
	}

	// Set args to run the specified subcommand
	rootCmd.SetArgs(append([]string{"env"}, args...))

	// Set the flags on the env command
	if err := EnvCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := EnvCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}
