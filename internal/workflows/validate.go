package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/kotare/internal/envfile"
)

// ValidateOptions configures the validate workflow.
type ValidateOptions struct {
	// Patterns is the set of files or glob patterns to check. Empty
	// means the default env file.
	Patterns []string

	// EnvFile is the fallback when no patterns are given.
	EnvFile string
}

// FileIssue is one syntax problem found in a file. It carries the line
// number and kind, never the offending content.
type FileIssue struct {
	Path string
	Line int
	Kind envfile.ErrorKind
}

// ValidateResult contains the outcome of a validate operation.
type ValidateResult struct {
	// Checked is the files that were parsed, in resolution order.
	Checked []string

	// Issues is every syntax problem found across all files.
	Issues []FileIssue
}

// Clean reports whether no issues were found.
func (r *ValidateResult) Clean() bool {
	return len(r.Issues) == 0
}

// Validate parses one or more env files and collects syntax issues.
// All files are checked even when earlier ones have problems.
func Validate(ctx context.Context, opts ValidateOptions) (*ValidateResult, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{opts.EnvFile}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	files, err := envfile.ResolveFiles(patterns, cwd)
	if err != nil {
		return nil, err
	}

	result := &ValidateResult{}
	for _, path := range files {
		result.Checked = append(result.Checked, path)

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if _, err := envfile.Parse(string(data)); err != nil {
			var perr *envfile.ParseError
			if errors.As(err, &perr) {
				result.Issues = append(result.Issues, FileIssue{
					Path: path,
					Line: perr.Line,
					Kind: perr.Kind,
				})
				// Keep scanning the rest of the file for more issues.
				// An encoding failure poisons the whole file, so only
				// separator errors get the second pass.
				if perr.Kind == envfile.KindMissingSeparator {
					issues := collectRemainingIssues(path, string(data), perr)
					result.Issues = append(result.Issues, issues...)
				}
				continue
			}
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return result, nil
}

// collectRemainingIssues re-parses with SkipInvalid to count issues
// past the first. The strict parse stops at the first error, so a
// second lenient pass walks the whole file.
func collectRemainingIssues(path, text string, first *envfile.ParseError) []FileIssue {
	var issues []FileIssue
	for _, line := range envfile.InvalidLines(text) {
		if line == first.Line {
			continue
		}
		issues = append(issues, FileIssue{
			Path: path,
			Line: line,
			Kind: envfile.KindMissingSeparator,
		})
	}
	return issues
}
