package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
)

// ConfigFileName is the project configuration file, found at the
// repository root.
const ConfigFileName = ".kotare.toml"

type UserConfig struct {
	User User `toml:"user"`
}

type User struct {
	Email string `toml:"email"`
	UUID  string `toml:"user_uuid"`
}

// ProjectConfig is the contents of .kotare.toml. It pins a repository
// to a remote project so commands don't need --project every time.
type ProjectConfig struct {
	Sync   SyncConfig   `toml:"sync"`
	Server ServerConfig `toml:"server"`
}

type SyncConfig struct {
	// DefaultProject is the remote project name or ID used when no
	// --project flag is given.
	DefaultProject string `toml:"default_project"`

	// EnvFile is the env file commands operate on by default.
	EnvFile string `toml:"env_file"`

	// ShowValues controls whether status output prints secret values.
	// Off by default; only key names are shown.
	ShowValues bool `toml:"show_values"`
}

type ServerConfig struct {
	// APIURL and IdentityURL override the public cloud endpoints for
	// self-hosted deployments. Empty means the defaults.
	APIURL      string `toml:"api_url,omitempty"`
	IdentityURL string `toml:"identity_url,omitempty"`
}

var (
	GlobalUserConfig    *UserConfig
	GlobalProjectConfig *ProjectConfig
)

// DefaultProjectConfig returns the config written by kotare env init.
func DefaultProjectConfig(project string) *ProjectConfig {
	return &ProjectConfig{
		Sync: SyncConfig{
			DefaultProject: project,
			EnvFile:        ".env",
		},
	}
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserKotareSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserKotareSettings.UserConfigsPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateUserUUID generates a new UUID for the user.
func GenerateUserUUID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has a UUID.
// The UUID identifies the user in audit log entries.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.User.UUID == "" {
		config.User.UUID = GenerateUserUUID()
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}

// LoadProjectConfig loads .kotare.toml from the project root.
// Note: Caller should ensure InitProjectSettings is called before calling this function.
func LoadProjectConfig() (*ProjectConfig, error) {
	if ProjectKotareSettings.ProjectPath == "" {
		return nil, kerrors.ErrNoProject
	}
	configPath := filepath.Join(ProjectKotareSettings.ProjectPath, ConfigFileName)

	config := &ProjectConfig{}
	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	if config.Sync.EnvFile == "" {
		config.Sync.EnvFile = ".env"
	}

	return config, nil
}

// SaveProjectConfig writes .kotare.toml to the given directory.
// Returns ErrConfigExists when a config is already present, unless
// overwrite is set.
func SaveProjectConfig(dir string, config *ProjectConfig, overwrite bool) error {
	configPath := filepath.Join(dir, ConfigFileName)

	if !overwrite {
		if _, err := os.Stat(configPath); err == nil {
			return kerrors.ErrConfigExists
		}
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}

	return nil
}

// ResolveProjectName applies flag > config precedence for the remote
// project. An empty result means the user must pass --project.
func (pc *ProjectConfig) ResolveProjectName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return pc.Sync.DefaultProject
}

// ResolveEnvFile applies flag > config > default precedence for the
// env file path.
func (pc *ProjectConfig) ResolveEnvFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if pc.Sync.EnvFile != "" {
		return pc.Sync.EnvFile
	}
	return ".env"
}
