// Package errors provides typed error values for the Kōtare application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Provider errors: remote store failures (ErrProjectNotFound, ErrAuthFailed, ErrNetwork)
//   - File errors: local .env file issues (ErrEnvFileNotFound, ErrFileExists)
//   - Config errors: configuration file issues (ErrConfigExists, ErrNoProject)
//
// Parse errors carry structure (line number, kind) and live in the
// envfile package as *envfile.ParseError.
//
// # Usage
//
// Return errors from internal packages:
//
//	if resp.StatusCode == http.StatusNotFound {
//	    return nil, kerrors.ErrProjectNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Pull(ctx, store, opts)
//	if errors.Is(err, kerrors.ErrFileExists) {
//	    // Suggest --force or --merge
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("fetching project %s: %w", name, kerrors.ErrProjectNotFound)
package errors
