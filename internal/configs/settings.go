package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/kotare/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

type ProjectSettings struct {
	ProjectName string
	ProjectPath string
}

var (
	UserKotareSettings    *UserSettings
	ProjectKotareSettings *ProjectSettings
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	// This is independent of what repo you are in, so it is ok to init here
	UserKotareSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "kotare"),
		UserDataPath:    filepath.Join(dataDir, "kotare"),
		Username:        username,
	}
	ProjectKotareSettings = &ProjectSettings{
		ProjectName: "",
		ProjectPath: "",
	}
}

// InitProjectSettings locates the nearest .kotare.toml above the
// working directory and fills in the project settings. ProjectPath
// stays empty when the repository has not been initialized.
func InitProjectSettings() error {
	projectPath, err := utils.FindProjectRoot()
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	projectName := ""
	if projectPath != "" {
		projectName = filepath.Base(projectPath)
	}

	ProjectKotareSettings = &ProjectSettings{
		ProjectName: projectName,
		ProjectPath: projectPath,
	}

	return nil
}

// AccessToken resolves the machine access token from the environment.
// KOTARE_ACCESS_TOKEN wins; BWS_ACCESS_TOKEN is honored for
// compatibility with other Bitwarden Secrets Manager tooling.
func AccessToken() string {
	if token := os.Getenv("KOTARE_ACCESS_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("BWS_ACCESS_TOKEN")
}
