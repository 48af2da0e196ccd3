// Package sync implements the reconciliation engine between a local
// .env secret map and a remote project's secret map.
//
// The package is pure: it operates on plain key-value maps and performs
// no I/O. The workflows package feeds it maps produced by the envfile
// parser and the secrets provider.
//
// # Merge Policies
//
// Merge combines two maps under one of two conflict rules:
//
//   - Overwrite: the incoming value wins for every key it carries
//   - Preserve: existing values win; incoming only adds missing keys
//
// Both policies are lossless (every key of either input appears in the
// result) and idempotent (applying the same incoming map twice changes
// nothing further).
//
// # Drift Detection
//
// Diff classifies keys into local-only, remote-only, and mismatched
// sets. Keys present on both sides with byte-equal values are omitted:
// the report is a delta, not a listing. All result slices are sorted by
// key for stable output.
package sync
