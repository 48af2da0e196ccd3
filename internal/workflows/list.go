package workflows

import (
	"context"
	"sort"

	"github.com/PolarWolf314/kotare/internal/provider"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Project is a remote project name or ID. Empty lists projects
	// instead of secrets.
	Project string
}

// ListResult contains either the accessible projects or the key names
// within one project. Values are never included.
type ListResult struct {
	// Projects is set when no project was requested.
	Projects []provider.Project

	// Project and Keys are set when listing one project's secrets.
	Project string
	Keys    []string
}

// List lists the projects the credentials can access, or the secret
// key names within one project.
func List(ctx context.Context, p provider.SecretsProvider, opts ListOptions) (*ListResult, error) {
	if opts.Project == "" {
		projects, err := p.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		sort.Slice(projects, func(i, j int) bool {
			return projects[i].Name < projects[j].Name
		})
		return &ListResult{Projects: projects}, nil
	}

	proj, err := provider.ResolveProject(ctx, p, opts.Project)
	if err != nil {
		return nil, err
	}

	secrets, err := p.ListSecrets(ctx, proj.ID)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(secrets))
	for _, s := range secrets {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)

	return &ListResult{Project: proj.Name, Keys: keys}, nil
}
