// Package configs manages user and project configuration for Kōtare.
//
// Configuration is stored in TOML format at two levels:
//
//   - User config: <config-dir>/kotare/config.toml (user identity for
//     audit entries)
//   - Project config: .kotare.toml at the repository root (default
//     project, env file, display settings)
//
// # Project Configuration
//
// The project config pins a repository to a remote project:
//
//	[sync]
//	default_project = "backend"
//	env_file = ".env"
//	show_values = false
//
//	[server]
//	api_url = "https://api.bitwarden.example.com"
//	identity_url = "https://identity.bitwarden.example.com"
//
// The [server] section is only needed for self-hosted deployments.
//
// # Precedence
//
// Command-line flags win over config values, which win over built-in
// defaults. The access token is never stored in config files; it comes
// from the KOTARE_ACCESS_TOKEN or BWS_ACCESS_TOKEN environment
// variable, or an interactive prompt.
//
// # Settings
//
// Global settings are initialized at startup:
//   - UserKotareSettings: paths to user config and data directories
//   - ProjectKotareSettings: current project's name and root path
//
// Call InitProjectSettings() before accessing ProjectKotareSettings.
// It walks up the directory tree to find the nearest .kotare.toml.
package configs
