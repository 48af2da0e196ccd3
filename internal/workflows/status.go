package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kotare/internal/envfile"
	"github.com/PolarWolf314/kotare/internal/provider"
	syncpkg "github.com/PolarWolf314/kotare/internal/sync"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Project is the remote project name or ID.
	Project string

	// EnvFile is the local env file to compare.
	EnvFile string
}

// StatusResult contains the drift report between a local env file and
// a remote project. Status never mutates either side.
type StatusResult struct {
	Project string
	EnvFile string

	// FileExists is false when the local file is absent; the
	// comparison treats it as empty.
	FileExists bool

	// LocalCount and RemoteCount are the key counts on each side.
	LocalCount  int
	RemoteCount int

	Report syncpkg.DriftReport
}

// InSync reports whether local and remote agree exactly.
func (r *StatusResult) InSync() bool {
	return r.Report.InSync()
}

// Status compares a local env file against a remote project and
// reports the drift. A missing local file is treated as empty, so all
// remote keys show up as remote-only.
func Status(ctx context.Context, p provider.SecretsProvider, opts StatusOptions) (*StatusResult, error) {
	local := map[string]string{}
	fileExists := false

	if _, err := os.Stat(opts.EnvFile); err == nil {
		fileExists = true
		doc, err := envfile.Load(opts.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", opts.EnvFile, err)
		}
		local = doc.SecretMap()
	}

	proj, err := provider.ResolveProject(ctx, p, opts.Project)
	if err != nil {
		return nil, err
	}

	remote, err := p.GetSecretsMap(ctx, proj.ID)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		Project:     proj.Name,
		EnvFile:     opts.EnvFile,
		FileExists:  fileExists,
		LocalCount:  len(local),
		RemoteCount: len(remote),
		Report:      *syncpkg.Diff(local, remote),
	}, nil
}
