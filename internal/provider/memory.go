package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
)

// MemoryProvider is an in-memory SecretsProvider used by tests and by
// workflow development. It supports failure injection so callers can
// exercise auth and network error paths without a real remote store.
type MemoryProvider struct {
	mu       sync.Mutex
	projects map[string]Project
	secrets  map[string]Secret

	// FailAuth makes every call fail with ErrAuthFailed.
	FailAuth bool
	// FailNetwork makes every call fail with ErrNetwork.
	FailNetwork bool
}

// NewMemoryProvider returns an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		projects: make(map[string]Project),
		secrets:  make(map[string]Secret),
	}
}

// AddProject registers a project and returns it.
func (m *MemoryProvider) AddProject(name string) Project {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := Project{
		ID:             uuid.New().String(),
		Name:           name,
		OrganizationID: uuid.New().String(),
	}
	m.projects[p.ID] = p
	return p
}

// SeedSecrets loads secrets into a project, replacing values for keys
// that already exist.
func (m *MemoryProvider) SeedSecrets(projectID string, values map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		if existing := m.findByKeyLocked(projectID, key); existing != nil {
			existing.Value = value
			m.secrets[existing.ID] = *existing
			continue
		}
		s := Secret{
			ID:        uuid.New().String(),
			Key:       key,
			Value:     value,
			ProjectID: projectID,
		}
		m.secrets[s.ID] = s
	}
}

func (m *MemoryProvider) injected() error {
	if m.FailAuth {
		return kerrors.ErrAuthFailed
	}
	if m.FailNetwork {
		return fmt.Errorf("connection refused: %w", kerrors.ErrNetwork)
	}
	return nil
}

func (m *MemoryProvider) findByKeyLocked(projectID, key string) *Secret {
	for id, s := range m.secrets {
		if s.ProjectID == projectID && s.Key == key {
			found := m.secrets[id]
			return &found
		}
	}
	return nil
}

// ListProjects implements SecretsProvider.
func (m *MemoryProvider) ListProjects(ctx context.Context) ([]Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(m.projects))
	for _, p := range m.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

// GetProject implements SecretsProvider.
func (m *MemoryProvider) GetProject(ctx context.Context, projectID string) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	p, ok := m.projects[projectID]
	if !ok {
		return nil, kerrors.ErrProjectNotFound
	}
	return &p, nil
}

// GetProjectByName implements SecretsProvider.
func (m *MemoryProvider) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	for _, p := range m.projects {
		if p.Name == name {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", name, kerrors.ErrProjectNotFound)
}

// ListSecrets implements SecretsProvider.
func (m *MemoryProvider) ListSecrets(ctx context.Context, projectID string) ([]Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	if _, ok := m.projects[projectID]; !ok {
		return nil, kerrors.ErrProjectNotFound
	}

	var secrets []Secret
	for _, s := range m.secrets {
		if s.ProjectID == projectID {
			secrets = append(secrets, s)
		}
	}
	return secrets, nil
}

// GetSecretsMap implements SecretsProvider.
func (m *MemoryProvider) GetSecretsMap(ctx context.Context, projectID string) (map[string]string, error) {
	secrets, err := m.ListSecrets(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return secretsToMap(secrets), nil
}

// CreateSecret implements SecretsProvider.
func (m *MemoryProvider) CreateSecret(ctx context.Context, projectID, key, value, note string) (*Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	if _, ok := m.projects[projectID]; !ok {
		return nil, kerrors.ErrProjectNotFound
	}

	s := Secret{
		ID:        uuid.New().String(),
		Key:       key,
		Value:     value,
		Note:      note,
		ProjectID: projectID,
	}
	m.secrets[s.ID] = s
	return &s, nil
}

// UpdateSecret implements SecretsProvider.
func (m *MemoryProvider) UpdateSecret(ctx context.Context, secretID, key, value, note string) (*Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return nil, err
	}

	s, ok := m.secrets[secretID]
	if !ok {
		return nil, kerrors.ErrSecretNotFound
	}
	s.Key = key
	s.Value = value
	s.Note = note
	m.secrets[secretID] = s
	return &s, nil
}

// DeleteSecret implements SecretsProvider.
func (m *MemoryProvider) DeleteSecret(ctx context.Context, secretID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected(); err != nil {
		return err
	}

	if _, ok := m.secrets[secretID]; !ok {
		return kerrors.ErrSecretNotFound
	}
	delete(m.secrets, secretID)
	return nil
}

// SyncSecrets implements SecretsProvider.
func (m *MemoryProvider) SyncSecrets(ctx context.Context, projectID string, secrets map[string]string, overwrite bool) (*SyncOutcome, error) {
	return syncWithCRUD(ctx, m, projectID, secrets, overwrite)
}
