// Package utils provides shared utility functions for the Kōtare application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for working with the filesystem and project structure:
//   - FindProjectRoot: walks up directories to find .kotare.toml
//   - WriteFileAtomic: writes a file through a temp-and-rename commit
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//
// # Project Utilities
//
//   - GetProjectName: returns the project's directory name, falling back
//     to the working directory when the repo isn't initialized yet
//
// # String Utilities
//
// Functions for formatting path and key lists for CLI output.
//
// # I/O Utilities
//
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks if stdin is a terminal
//   - ReadSecretPrompt: reads a secret from the terminal without echo
package utils
