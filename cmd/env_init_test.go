package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kotare/internal/configs"
)

func TestInitCommand_CreatesConfig(t *testing.T) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserKotareSettings
	setupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	ResetGlobalState()

	output, err := captureOutput(func() error {
		cmd := createTestCLI([]string{"init", "--project", "backend"}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Init command failed: %v", err)
	}

	if !strings.Contains(output, "Initialized") {
		t.Errorf("Expected success message, got: %s", output)
	}

	configPath := filepath.Join(tempDir, configs.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf(".kotare.toml was not created")
	}

	// The written config pins the project and the default env file.
	var config configs.ProjectConfig
	if err := configs.LoadTOML(configPath, &config); err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.Sync.DefaultProject != "backend" {
		t.Errorf("Expected default project backend, got %q", config.Sync.DefaultProject)
	}
	if config.Sync.EnvFile != ".env" {
		t.Errorf("Expected env file .env, got %q", config.Sync.EnvFile)
	}
}

func TestInitCommand_RefusesSecondInit(t *testing.T) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserKotareSettings
	setupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	ResetGlobalState()

	_, err = captureOutput(func() error {
		cmd := createTestCLI([]string{"init", "--project", "backend"}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("First init failed: %v", err)
	}

	ResetGlobalState()
	output, err := captureOutput(func() error {
		cmd := createTestCLI([]string{"init", "--project", "other"}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Second init errored instead of printing guidance: %v", err)
	}

	if !strings.Contains(output, "already initialized") {
		t.Errorf("Expected already-initialized message, got: %s", output)
	}

	// Original config untouched.
	var config configs.ProjectConfig
	if err := configs.LoadTOML(filepath.Join(tempDir, configs.ConfigFileName), &config); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Sync.DefaultProject != "backend" {
		t.Errorf("Config was overwritten without --force")
	}
}

func TestInitCommand_DefaultsToDirectoryName(t *testing.T) {
	tempDir := t.TempDir()
	tempUserDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalUserSettings := configs.UserKotareSettings
	setupTestEnvironment(t, tempDir, tempUserDir, originalWd, originalUserSettings)
	ResetGlobalState()

	// The directory name becomes the project when --project is omitted.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	wantProject := filepath.Base(wd)

	output, err := captureOutput(func() error {
		cmd := createTestCLI([]string{"init"}, nil, nil, false, false)
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Init command failed: %v", err)
	}

	if !strings.Contains(output, "Initialized") {
		t.Errorf("Expected success message, got: %s", output)
	}

	var config configs.ProjectConfig
	if err := configs.LoadTOML(filepath.Join(tempDir, configs.ConfigFileName), &config); err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.Sync.DefaultProject != wantProject {
		t.Errorf("Expected default project %q, got %q", wantProject, config.Sync.DefaultProject)
	}
}
