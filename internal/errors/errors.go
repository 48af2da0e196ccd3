package errors

import "errors"

// Provider errors indicate failures talking to the remote secret store.
var (
	// ErrProjectNotFound indicates the requested project does not exist remotely.
	ErrProjectNotFound = errors.New("project not found")

	// ErrSecretNotFound indicates the requested secret does not exist remotely.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrAuthFailed indicates the access token is missing, invalid, or expired.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNetwork indicates a transport-level failure reaching the remote store.
	ErrNetwork = errors.New("network error")
)

// File errors indicate issues with the local .env file.
var (
	// ErrEnvFileNotFound indicates the input .env file could not be located.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrFileExists indicates pull would overwrite an existing file without
	// --force or merge consent.
	ErrFileExists = errors.New("file already exists")
)

// Config errors indicate issues with the project configuration file.
var (
	// ErrConfigExists indicates init found an existing configuration file.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrNoProject indicates no project was given on the command line or
	// in the configuration file.
	ErrNoProject = errors.New("no project specified")
)
