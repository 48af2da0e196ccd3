package workflows

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/PolarWolf314/kotare/internal/audit"
	"github.com/PolarWolf314/kotare/internal/envfile"
	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/provider"
	syncpkg "github.com/PolarWolf314/kotare/internal/sync"
	"github.com/PolarWolf314/kotare/internal/utils"
)

// PushOptions configures the push workflow.
type PushOptions struct {
	// Project is the remote project name or ID.
	Project string

	// EnvFile is the local env file to upload.
	EnvFile string

	// Overwrite updates remote values for keys that already exist.
	// Without it, existing remote keys are left untouched.
	Overwrite bool

	// DryRun previews the push without writing to the remote store.
	DryRun bool
}

// PushResult contains the outcome of a push operation. Key slices are
// sorted and never carry values.
type PushResult struct {
	Project string
	EnvFile string

	Created []string
	Updated []string
	Skipped []string

	DryRun bool
}

// Total returns the number of keys considered.
func (r *PushResult) Total() int {
	return len(r.Created) + len(r.Updated) + len(r.Skipped)
}

// Push uploads the entries of a local env file to a remote project.
//
// The local file is parsed before any provider call, so a malformed
// file fails fast without touching the network. An empty file is a
// no-op. Returns ErrEnvFileNotFound if the file doesn't exist. An
// EnvFile of "-" reads the entries from piped stdin instead.
func Push(ctx context.Context, p provider.SecretsProvider, opts PushOptions) (*PushResult, error) {
	doc, err := loadPushDocument(opts.EnvFile)
	if err != nil {
		return nil, err
	}

	result := &PushResult{
		Project: opts.Project,
		EnvFile: opts.EnvFile,
		DryRun:  opts.DryRun,
	}

	local := doc.SecretMap()
	if len(local) == 0 {
		return result, nil
	}

	proj, err := provider.ResolveProject(ctx, p, opts.Project)
	if err != nil {
		return nil, err
	}
	result.Project = proj.Name

	if opts.DryRun {
		remote, err := p.GetSecretsMap(ctx, proj.ID)
		if err != nil {
			return nil, err
		}

		// Mirror the real sync: local-only keys would be created, keys
		// already remote would be updated or skipped by the flag.
		report := syncpkg.Diff(local, remote)
		result.Created = report.LocalOnly

		var existing []string
		for key := range local {
			if _, ok := remote[key]; ok {
				existing = append(existing, key)
			}
		}
		sort.Strings(existing)
		if opts.Overwrite {
			result.Updated = existing
		} else {
			result.Skipped = existing
		}
		return result, nil
	}

	outcome, err := p.SyncSecrets(ctx, proj.ID, local, opts.Overwrite)
	if err != nil {
		return nil, err
	}

	result.Created = outcome.Created
	result.Updated = outcome.Updated
	result.Skipped = outcome.Skipped

	auditEntry := audit.LogWithUser("push")
	auditEntry.Project = proj.Name
	auditEntry.EnvFile = opts.EnvFile
	auditEntry.CreatedCount = len(result.Created)
	auditEntry.UpdatedCount = len(result.Updated)
	auditEntry.SkippedCount = len(result.Skipped)
	audit.Log(auditEntry)

	return result, nil
}

// loadPushDocument reads the entries to push, either from a file or
// from piped stdin when the path is "-".
func loadPushDocument(path string) (*envfile.Document, error) {
	if path == "-" {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		doc, err := envfile.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return doc, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrEnvFileNotFound, path)
	}
	doc, err := envfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
