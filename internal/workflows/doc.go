// Package workflows provides high-level orchestration for Kōtare commands.
//
// Workflows coordinate multiple operations across packages (envfile,
// sync, provider, audit) to implement complete user-facing features.
// Each workflow handles a single command's business logic, independent
// of CLI concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Parsing and serializing env files
//   - Talking to the remote store through a SecretsProvider
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
// Each command has a corresponding workflow:
//
//   - Push: Uploads local env entries to a remote project
//   - Pull: Writes remote secrets into the local env file
//   - Status: Reports drift between local file and remote project
//   - Validate: Checks env files for syntax errors
//   - List: Lists remote projects, or the keys within one
//   - Init: Writes a .kotare.toml for the repository
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Pull(ctx, provider, opts)
//	if errors.Is(err, kerrors.ErrFileExists) {
//	    // Suggest --force or --merge
//	}
//
// Errors never contain secret values, only key names and counts.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// This enables cancellation, timeouts, and passing request-scoped values.
package workflows
