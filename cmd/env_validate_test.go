package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kotare/internal/configs"
)

func TestValidateCommand_CleanFile(t *testing.T) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserKotareSettings
	setupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	ResetGlobalState()

	envPath := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envPath, []byte("A=1\nB=2\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	output, err := captureOutput(func() error {
		cmd := createTestCLI([]string{"validate", envPath}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Validate command failed: %v", err)
	}

	if !strings.Contains(output, "valid") {
		t.Errorf("Expected valid message, got: %s", output)
	}
	if !strings.Contains(output, envPath) {
		t.Errorf("Expected checked file path in output, got: %s", output)
	}
}

func TestValidateCommand_ReportsLineNumbers(t *testing.T) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserKotareSettings
	setupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	ResetGlobalState()

	envPath := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envPath, []byte("A=1\nBROKEN\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	output, err := captureOutput(func() error {
		cmd := createTestCLI([]string{"validate", envPath}, nil, nil, false, false)
		return cmd.Execute()
	})
	// Validation failures must surface as an error so the process exits non-zero.
	if err == nil {
		t.Fatalf("Expected validate to return an error for a malformed file")
	}

	if !strings.Contains(output, ":2") {
		t.Errorf("Expected line number in output, got: %s", output)
	}
	if !strings.Contains(output, "missing '='") {
		t.Errorf("Expected separator message, got: %s", output)
	}
	// The offending line content must never appear in output.
	if strings.Contains(output, "BROKEN") {
		t.Errorf("Output leaked file content: %s", output)
	}
}
