package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kotare/internal/audit"
	"github.com/PolarWolf314/kotare/internal/envfile"
	kerrors "github.com/PolarWolf314/kotare/internal/errors"
	"github.com/PolarWolf314/kotare/internal/provider"
	syncpkg "github.com/PolarWolf314/kotare/internal/sync"
	"github.com/PolarWolf314/kotare/internal/utils"
)

// PullOptions configures the pull workflow.
type PullOptions struct {
	// Project is the remote project name or ID.
	Project string

	// EnvFile is the local env file to write.
	EnvFile string

	// Force replaces the whole file with the remote contents.
	Force bool

	// Merge combines remote secrets into the existing file, keeping
	// local values for keys present in both.
	Merge bool

	// DryRun previews the pull without writing the file.
	DryRun bool
}

// PullResult contains the outcome of a pull operation. Key slices are
// sorted and never carry values.
type PullResult struct {
	Project string
	EnvFile string

	// Written is the number of keys in the resulting file.
	Written int

	// Added is the keys that were not in the local file before.
	Added []string

	// Kept is the keys whose local values survived a merge.
	Kept []string

	DryRun bool
}

// Pull writes the secrets of a remote project into a local env file.
//
// When the file already exists, the caller must consent to touching it:
// Force replaces the file with the remote contents, Merge folds remote
// keys in while keeping local values. Without either, ErrFileExists is
// returned and nothing is written.
//
// The new contents are serialized fully in memory and committed with a
// single atomic rename, so a failure partway through never corrupts
// the existing file.
func Pull(ctx context.Context, p provider.SecretsProvider, opts PullOptions) (*PullResult, error) {
	fileExists := false
	if _, err := os.Stat(opts.EnvFile); err == nil {
		fileExists = true
	}

	if fileExists && !opts.Force && !opts.Merge {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileExists, opts.EnvFile)
	}

	proj, err := provider.ResolveProject(ctx, p, opts.Project)
	if err != nil {
		return nil, err
	}

	remote, err := p.GetSecretsMap(ctx, proj.ID)
	if err != nil {
		return nil, err
	}

	result := &PullResult{
		Project: proj.Name,
		EnvFile: opts.EnvFile,
		DryRun:  opts.DryRun,
	}

	var doc *envfile.Document
	switch {
	case fileExists && opts.Merge:
		existing, err := envfile.Load(opts.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", opts.EnvFile, err)
		}
		local := existing.SecretMap()

		merged := syncpkg.Merge(local, remote, syncpkg.Preserve)
		doc = mergedDocument(existing, merged)

		report := syncpkg.Diff(local, remote)
		result.Added = report.RemoteOnly
		for _, m := range report.Mismatched {
			result.Kept = append(result.Kept, m.Key)
		}
	default:
		// Fresh file, or Force replacing an existing one.
		doc = envfile.FromMap(remote)
		result.Added = doc.Keys()
	}

	result.Written = doc.Len()

	if opts.DryRun {
		return result, nil
	}

	if err := utils.WriteFileAtomic(opts.EnvFile, []byte(doc.Serialize()), 0600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", opts.EnvFile, err)
	}

	// The trail distinguishes a first write from a consented replacement.
	mode := "create"
	switch {
	case fileExists && opts.Merge:
		mode = "preserve"
	case fileExists:
		mode = "overwrite"
	}
	auditEntry := audit.LogWithUser("pull")
	auditEntry.Project = proj.Name
	auditEntry.EnvFile = opts.EnvFile
	auditEntry.Mode = mode
	auditEntry.PulledCount = result.Written
	auditEntry.UpdatedCount = len(result.Added)
	auditEntry.SkippedCount = len(result.Kept)
	audit.Log(auditEntry)

	return result, nil
}

// mergedDocument rebuilds a document from merged values, keeping the
// comments attached to entries that survive from the existing file.
func mergedDocument(existing *envfile.Document, merged map[string]string) *envfile.Document {
	doc := envfile.FromMap(merged)
	doc.Comments = existing.Comments

	inline := make(map[string]string, len(existing.Entries))
	for _, e := range existing.Entries {
		if e.Comment != "" {
			inline[e.Key] = e.Comment
		}
	}
	for i := range doc.Entries {
		if c, ok := inline[doc.Entries[i].Key]; ok {
			doc.Entries[i].Comment = c
		}
	}
	return doc
}
