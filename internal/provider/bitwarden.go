package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	kerrors "github.com/PolarWolf314/kotare/internal/errors"
)

const (
	defaultAPIURL      = "https://api.bitwarden.com"
	defaultIdentityURL = "https://identity.bitwarden.com"
)

// BitwardenConfig configures the Bitwarden Secrets Manager client.
// Zero-value URLs fall back to the public cloud endpoints.
type BitwardenConfig struct {
	// AccessToken is a machine account token of the form
	// {version}.{client_id}.{client_secret}.
	AccessToken string

	// APIURL overrides the Secrets Manager API endpoint (self-hosted).
	APIURL string

	// IdentityURL overrides the identity endpoint used for token exchange.
	IdentityURL string
}

// BitwardenProvider talks to the Bitwarden Secrets Manager REST API.
// Transient transport failures are retried by the underlying
// retryablehttp client; API errors are mapped to the sentinel errors
// in internal/errors and returned without retry.
type BitwardenProvider struct {
	client         *retryablehttp.Client
	apiURL         string
	identityURL    string
	accessToken    string
	organizationID string

	bearer string
}

// NewBitwardenProvider authenticates the access token against the
// identity endpoint and returns a ready provider.
func NewBitwardenProvider(ctx context.Context, cfg BitwardenConfig) (*BitwardenProvider, error) {
	orgID, err := parseOrganizationID(cfg.AccessToken)
	if err != nil {
		return nil, err
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	p := &BitwardenProvider{
		client:         client,
		apiURL:         strings.TrimSuffix(orDefault(cfg.APIURL, defaultAPIURL), "/"),
		identityURL:    strings.TrimSuffix(orDefault(cfg.IdentityURL, defaultIdentityURL), "/"),
		accessToken:    cfg.AccessToken,
		organizationID: orgID,
	}

	if err := p.login(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// OrganizationID returns the organization the access token belongs to.
func (p *BitwardenProvider) OrganizationID() string {
	return p.organizationID
}

// parseOrganizationID extracts the organization UUID from an access
// token of the form {version}.{org_uuid}.{secret}.
func parseOrganizationID(accessToken string) (string, error) {
	parts := strings.Split(accessToken, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("malformed access token: %w", kerrors.ErrAuthFailed)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return "", fmt.Errorf("malformed access token: %w", kerrors.ErrAuthFailed)
	}
	return id.String(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// login exchanges the access token for a bearer token.
func (p *BitwardenProvider) login(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "api.secrets")
	form.Set("client_id", p.organizationID)
	form.Set("client_secret", p.accessToken)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		p.identityURL+"/connect/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity endpoint unreachable: %w", kerrors.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return kerrors.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity endpoint returned %s", resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	if token.AccessToken == "" {
		return kerrors.ErrAuthFailed
	}

	p.bearer = token.AccessToken
	return nil
}

// do performs an authenticated API call, decoding a JSON response into
// out when out is non-nil. notFound is the sentinel returned for 404s.
func (p *BitwardenProvider) do(ctx context.Context, method, path string, body, out interface{}, notFound error) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, p.apiURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, kerrors.ErrNetwork)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return kerrors.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s %s returned %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// ListProjects implements SecretsProvider.
func (p *BitwardenProvider) ListProjects(ctx context.Context) ([]Project, error) {
	var resp struct {
		Data []Project `json:"data"`
	}
	path := fmt.Sprintf("/organizations/%s/projects", p.organizationID)
	if err := p.do(ctx, http.MethodGet, path, nil, &resp, kerrors.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetProject implements SecretsProvider.
func (p *BitwardenProvider) GetProject(ctx context.Context, projectID string) (*Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		// Not an ID; the caller falls back to a name lookup.
		return nil, kerrors.ErrProjectNotFound
	}

	var proj Project
	if err := p.do(ctx, http.MethodGet, "/projects/"+projectID, nil, &proj, kerrors.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &proj, nil
}

// GetProjectByName implements SecretsProvider.
func (p *BitwardenProvider) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := p.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, proj := range projects {
		if proj.Name == name {
			found := proj
			return &found, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", name, kerrors.ErrProjectNotFound)
}

// ListSecrets implements SecretsProvider.
func (p *BitwardenProvider) ListSecrets(ctx context.Context, projectID string) ([]Secret, error) {
	var identifiers struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/projects/%s/secrets", projectID)
	if err := p.do(ctx, http.MethodGet, path, nil, &identifiers, kerrors.ErrProjectNotFound); err != nil {
		return nil, err
	}

	secrets := make([]Secret, 0, len(identifiers.Data))
	for _, ident := range identifiers.Data {
		var s Secret
		if err := p.do(ctx, http.MethodGet, "/secrets/"+ident.ID, nil, &s, kerrors.ErrSecretNotFound); err != nil {
			return nil, fmt.Errorf("fetching secret %s: %w", ident.ID, err)
		}
		secrets = append(secrets, s)
	}
	return secrets, nil
}

// GetSecretsMap implements SecretsProvider.
func (p *BitwardenProvider) GetSecretsMap(ctx context.Context, projectID string) (map[string]string, error) {
	secrets, err := p.ListSecrets(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return secretsToMap(secrets), nil
}

type secretWriteRequest struct {
	Key        string   `json:"key"`
	Value      string   `json:"value"`
	Note       string   `json:"note"`
	ProjectIDs []string `json:"projectIds,omitempty"`
}

// CreateSecret implements SecretsProvider.
func (p *BitwardenProvider) CreateSecret(ctx context.Context, projectID, key, value, note string) (*Secret, error) {
	body := secretWriteRequest{Key: key, Value: value, Note: note, ProjectIDs: []string{projectID}}

	var s Secret
	path := fmt.Sprintf("/organizations/%s/secrets", p.organizationID)
	if err := p.do(ctx, http.MethodPost, path, body, &s, kerrors.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSecret implements SecretsProvider.
func (p *BitwardenProvider) UpdateSecret(ctx context.Context, secretID, key, value, note string) (*Secret, error) {
	current, err := p.getSecret(ctx, secretID)
	if err != nil {
		return nil, err
	}

	body := secretWriteRequest{Key: key, Value: value, Note: note}
	if current.ProjectID != "" {
		body.ProjectIDs = []string{current.ProjectID}
	}

	var s Secret
	if err := p.do(ctx, http.MethodPut, "/secrets/"+secretID, body, &s, kerrors.ErrSecretNotFound); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSecret implements SecretsProvider.
func (p *BitwardenProvider) DeleteSecret(ctx context.Context, secretID string) error {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: []string{secretID}}
	return p.do(ctx, http.MethodPost, "/secrets/delete", body, nil, kerrors.ErrSecretNotFound)
}

// SyncSecrets implements SecretsProvider.
func (p *BitwardenProvider) SyncSecrets(ctx context.Context, projectID string, secrets map[string]string, overwrite bool) (*SyncOutcome, error) {
	return syncWithCRUD(ctx, p, projectID, secrets, overwrite)
}

func (p *BitwardenProvider) getSecret(ctx context.Context, secretID string) (*Secret, error) {
	var s Secret
	if err := p.do(ctx, http.MethodGet, "/secrets/"+secretID, nil, &s, kerrors.ErrSecretNotFound); err != nil {
		return nil, err
	}
	return &s, nil
}
