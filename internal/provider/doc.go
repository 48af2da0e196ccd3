// Package provider defines the capability interface for remote secret
// stores and its implementations.
//
// The SecretsProvider interface abstracts authenticated CRUD against a
// remote store organized into projects of key-value secrets. The sync
// engine and workflows depend only on the interface, never on a
// concrete implementation, so they can be exercised against the
// in-memory test double.
//
// Two implementations ship with Kōtare:
//
//   - BitwardenProvider: the Bitwarden Secrets Manager REST API,
//     authenticated with a machine access token
//   - MemoryProvider: an in-memory double for tests, with failure
//     injection for auth and network errors
//
// Provider failures are reported through the sentinel errors in
// internal/errors (ErrProjectNotFound, ErrAuthFailed, ErrNetwork) so
// callers can branch with errors.Is without string matching. Retry of
// transient transport failures is handled inside the Bitwarden
// transport; callers never retry.
package provider
