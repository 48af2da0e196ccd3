package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/kotare/internal/configs"
	"github.com/PolarWolf314/kotare/internal/utils"
)

// Entry represents a single audit log entry. Entries record key counts
// only, never secret values or key names.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Username performing action.
	UserUUID  string `json:"uuid"` // UUID of user performing action.
	Host      string `json:"host"` // Hostname the action ran on.
	Operation string `json:"op"`   // Operation name (push, pull, init).

	// Optional fields depending on operation.
	Project      string `json:"project,omitempty"`       // Remote project name.
	EnvFile      string `json:"env_file,omitempty"`      // Env file path.
	Mode         string `json:"mode,omitempty"`          // For pull (overwrite/preserve).
	CreatedCount int    `json:"created_count,omitempty"` // For push.
	UpdatedCount int    `json:"updated_count,omitempty"` // For push/pull.
	SkippedCount int    `json:"skipped_count,omitempty"` // For push/pull.
	PulledCount  int    `json:"pulled_count,omitempty"`  // For pull.
	DryRun       bool   `json:"dry_run,omitempty"`       // For push/pull.
}

// Log appends an entry to the audit log.
// If logging fails, the operation continues without error.
// Syncs should not fail just because audit logging failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	// Open file for appending (create if doesn't exist).
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser is a convenience function that populates user fields from config.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}

	entry.User = configs.UserKotareSettings.Username
	if host, err := utils.GetHostname(); err == nil {
		entry.Host = host
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return entry
	}
	entry.UserUUID = userConfig.User.UUID

	return entry
}

// LogPath returns the path to the audit log file.
// Returns empty string if the user data directory is unknown.
func LogPath() string {
	dataPath := configs.UserKotareSettings.UserDataPath
	if dataPath == "" {
		return ""
	}
	return filepath.Join(dataPath, "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
