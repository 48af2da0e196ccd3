package provider

import (
	"context"
	"errors"
	"sort"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
)

// Project is a remote container of secrets.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

// Secret is one remote key-value secret.
type Secret struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Note      string `json:"note,omitempty"`
	ProjectID string `json:"projectId"`
}

// SyncOutcome summarizes a bulk SyncSecrets call. Key slices are sorted
// and carry names only, never values.
type SyncOutcome struct {
	Created []string
	Updated []string
	Skipped []string
	Secrets []Secret
}

// Total returns the number of keys the call touched or considered.
func (o *SyncOutcome) Total() int {
	return len(o.Created) + len(o.Updated) + len(o.Skipped)
}

// SecretsProvider is the capability consumed by the sync workflows to
// talk to a remote secret store. Implementations must be safe for
// sequential use within one operation; no concurrent calls are made.
type SecretsProvider interface {
	// ListProjects returns all projects the credentials can access.
	ListProjects(ctx context.Context) ([]Project, error)

	// GetProject fetches a project by ID. Returns ErrProjectNotFound
	// if the ID is unknown.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// GetProjectByName fetches a project by exact name. Returns
	// ErrProjectNotFound if no project matches.
	GetProjectByName(ctx context.Context, name string) (*Project, error)

	// ListSecrets returns all secrets in a project.
	ListSecrets(ctx context.Context, projectID string) ([]Secret, error)

	// GetSecretsMap returns the project's secrets as a key-value map.
	GetSecretsMap(ctx context.Context, projectID string) (map[string]string, error)

	// CreateSecret creates a new secret in a project.
	CreateSecret(ctx context.Context, projectID, key, value, note string) (*Secret, error)

	// UpdateSecret replaces an existing secret's key and value.
	UpdateSecret(ctx context.Context, secretID, key, value, note string) (*Secret, error)

	// DeleteSecret removes a secret.
	DeleteSecret(ctx context.Context, secretID string) error

	// SyncSecrets bulk-creates or updates secrets. Keys absent remotely
	// are created. Keys already present are updated only when overwrite
	// is true, otherwise left untouched and reported as skipped.
	SyncSecrets(ctx context.Context, projectID string, secrets map[string]string, overwrite bool) (*SyncOutcome, error)
}

// ResolveProject looks up a project first by ID, then by name, so
// users can pass either on the command line.
func ResolveProject(ctx context.Context, p SecretsProvider, nameOrID string) (*Project, error) {
	proj, err := p.GetProject(ctx, nameOrID)
	if err == nil {
		return proj, nil
	}
	if !errors.Is(err, kerrors.ErrProjectNotFound) {
		return nil, err
	}
	return p.GetProjectByName(ctx, nameOrID)
}

// syncWithCRUD implements SyncSecrets on top of the basic list, create,
// and update operations. Both providers route through this so the
// overwrite semantics stay identical. Keys are processed in sorted
// order for deterministic results.
func syncWithCRUD(ctx context.Context, p SecretsProvider, projectID string, secrets map[string]string, overwrite bool) (*SyncOutcome, error) {
	existing, err := p.ListSecrets(ctx, projectID)
	if err != nil {
		return nil, err
	}

	existingByKey := make(map[string]Secret, len(existing))
	for _, s := range existing {
		existingByKey[s.Key] = s
	}

	keys := make([]string, 0, len(secrets))
	for k := range secrets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outcome := &SyncOutcome{}
	for _, key := range keys {
		value := secrets[key]

		current, exists := existingByKey[key]
		if !exists {
			created, err := p.CreateSecret(ctx, projectID, key, value, "")
			if err != nil {
				return nil, err
			}
			outcome.Created = append(outcome.Created, key)
			outcome.Secrets = append(outcome.Secrets, *created)
			continue
		}

		if !overwrite {
			outcome.Skipped = append(outcome.Skipped, key)
			outcome.Secrets = append(outcome.Secrets, current)
			continue
		}

		updated, err := p.UpdateSecret(ctx, current.ID, key, value, current.Note)
		if err != nil {
			return nil, err
		}
		outcome.Updated = append(outcome.Updated, key)
		outcome.Secrets = append(outcome.Secrets, *updated)
	}

	return outcome, nil
}

// secretsToMap flattens a secret list to the key-value map exchanged
// with the sync engine.
func secretsToMap(secrets []Secret) map[string]string {
	m := make(map[string]string, len(secrets))
	for _, s := range secrets {
		m[s.Key] = s.Value
	}
	return m
}
