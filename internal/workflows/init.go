package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kotare/internal/audit"
	"github.com/PolarWolf314/kotare/internal/configs"
	"github.com/PolarWolf314/kotare/internal/utils"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Project is the remote project to pin as the default. When empty,
	// the current directory's name is used.
	Project string

	// EnvFile overrides the default env file path.
	EnvFile string

	// Force overwrites an existing .kotare.toml.
	Force bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	ConfigPath string
	Project    string
	EnvFile    string
}

// Init writes a .kotare.toml into the current directory, pinning it to
// a remote project. Returns ErrConfigExists when a config is already
// present and Force is not set.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	project := opts.Project
	if project == "" {
		project, err = utils.GetProjectName()
		if err != nil {
			return nil, err
		}
	}

	config := configs.DefaultProjectConfig(project)
	if opts.EnvFile != "" {
		config.Sync.EnvFile = opts.EnvFile
	}

	if err := configs.SaveProjectConfig(dir, config, opts.Force); err != nil {
		return nil, err
	}

	// Make sure the user has an identity for future audit entries.
	if _, err := configs.EnsureUserConfig(); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("init")
	auditEntry.Project = project
	auditEntry.EnvFile = config.Sync.EnvFile
	audit.Log(auditEntry)

	return &InitResult{
		ConfigPath: configs.ConfigFileName,
		Project:    project,
		EnvFile:    config.Sync.EnvFile,
	}, nil
}
