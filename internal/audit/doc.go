// Package audit provides audit trail logging for Kōtare operations.
//
// Every operation that touches the remote store or rewrites an env
// file (push, pull, init) is recorded in a per-user audit log. This
// helps trace when a project's secrets were last synchronized and by
// whom.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<data-dir>/kotare/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Username, user UUID, and hostname
//   - Operation name
//   - Operation-specific details (project, env file, key counts, mode)
//
// Entries never contain secret values or key names, only counts.
//
// # Usage
//
// Create an entry with user info pre-populated:
//
//	entry := audit.LogWithUser("push")
//	entry.Project = projectName
//	entry.CreatedCount = len(outcome.Created)
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Syncs should never
// fail just because audit logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
