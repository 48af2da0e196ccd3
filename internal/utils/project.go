package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetProjectName returns the name of the current project (directory).
// An uninitialized repository falls back to the working directory's
// name, which is what init is about to pin.
func GetProjectName() (string, error) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		return "", fmt.Errorf("failed to get project directory: %w", err)
	}
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return filepath.Base(wd), nil
	}
	return filepath.Base(projectRoot), nil
}
