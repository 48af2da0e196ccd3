package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// FindProjectRoot traverses up directories to find the directory
// holding .kotare.toml.
// Returns the path to the project root if found, empty string otherwise.
// Stops searching when it reaches the user's home directory.
func FindProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	// Get the user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		configPath := filepath.Join(currentDir, ".kotare.toml")
		fileInfo, err := os.Stat(configPath)
		// No error means the path exists
		if err == nil {
			if !fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for .kotare.toml at %s: %w", currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// If we've reached the filesystem root and haven't found .kotare.toml
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
