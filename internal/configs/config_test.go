package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
)

func TestSaveAndLoadProjectConfig(t *testing.T) {
	tempDir := t.TempDir()

	config := DefaultProjectConfig("backend")
	config.Sync.ShowValues = true
	config.Server.APIURL = "https://api.example.com"

	if err := SaveProjectConfig(tempDir, config, false); err != nil {
		t.Fatalf("SaveProjectConfig failed: %v", err)
	}

	originalSettings := ProjectKotareSettings
	defer func() { ProjectKotareSettings = originalSettings }()
	ProjectKotareSettings = &ProjectSettings{
		ProjectName: filepath.Base(tempDir),
		ProjectPath: tempDir,
	}

	loaded, err := LoadProjectConfig()
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}

	if loaded.Sync.DefaultProject != "backend" {
		t.Errorf("Expected default project %q, got %q", "backend", loaded.Sync.DefaultProject)
	}
	if loaded.Sync.EnvFile != ".env" {
		t.Errorf("Expected env file %q, got %q", ".env", loaded.Sync.EnvFile)
	}
	if !loaded.Sync.ShowValues {
		t.Error("Expected show_values to round-trip")
	}
	if loaded.Server.APIURL != "https://api.example.com" {
		t.Errorf("Expected api_url to round-trip, got %q", loaded.Server.APIURL)
	}
}

func TestSaveProjectConfigRefusesOverwrite(t *testing.T) {
	tempDir := t.TempDir()

	if err := SaveProjectConfig(tempDir, DefaultProjectConfig("backend"), false); err != nil {
		t.Fatalf("SaveProjectConfig failed: %v", err)
	}

	err := SaveProjectConfig(tempDir, DefaultProjectConfig("other"), false)
	if !errors.Is(err, kerrors.ErrConfigExists) {
		t.Fatalf("Expected ErrConfigExists, got %v", err)
	}

	if err := SaveProjectConfig(tempDir, DefaultProjectConfig("other"), true); err != nil {
		t.Fatalf("SaveProjectConfig with overwrite failed: %v", err)
	}
}

func TestLoadProjectConfigWithoutProject(t *testing.T) {
	originalSettings := ProjectKotareSettings
	defer func() { ProjectKotareSettings = originalSettings }()
	ProjectKotareSettings = &ProjectSettings{}

	_, err := LoadProjectConfig()
	if !errors.Is(err, kerrors.ErrNoProject) {
		t.Fatalf("Expected ErrNoProject, got %v", err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	config := &ProjectConfig{
		Sync: SyncConfig{DefaultProject: "backend", EnvFile: ".env.local"},
	}

	if got := config.ResolveProjectName("frontend"); got != "frontend" {
		t.Errorf("Flag should win, got %q", got)
	}
	if got := config.ResolveProjectName(""); got != "backend" {
		t.Errorf("Config should apply, got %q", got)
	}

	if got := config.ResolveEnvFile(".env.staging"); got != ".env.staging" {
		t.Errorf("Flag should win, got %q", got)
	}
	if got := config.ResolveEnvFile(""); got != ".env.local" {
		t.Errorf("Config should apply, got %q", got)
	}

	empty := &ProjectConfig{}
	if got := empty.ResolveEnvFile(""); got != ".env" {
		t.Errorf("Default should apply, got %q", got)
	}
}

func TestDefaultEnvFileFilledOnLoad(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, ConfigFileName)
	raw := "[sync]\ndefault_project = \"backend\"\n"
	if err := os.WriteFile(configPath, []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	originalSettings := ProjectKotareSettings
	defer func() { ProjectKotareSettings = originalSettings }()
	ProjectKotareSettings = &ProjectSettings{ProjectPath: tempDir}

	loaded, err := LoadProjectConfig()
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}
	if loaded.Sync.EnvFile != ".env" {
		t.Errorf("Expected env_file to default to .env, got %q", loaded.Sync.EnvFile)
	}
}
