package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kotare/internal/configs"
)

func withTempDataDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	original := configs.UserKotareSettings
	configs.UserKotareSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "configs"),
		UserDataPath:    filepath.Join(tempDir, "data"),
		Username:        "testuser",
	}
	t.Cleanup(func() {
		configs.UserKotareSettings = original
	})
	return tempDir
}

func TestLog_CreatesFile(t *testing.T) {
	withTempDataDir(t)

	entry := Entry{
		User:      "testuser",
		UserUUID:  "test-uuid",
		Operation: "push",
		Project:   "backend",
	}
	Log(entry)

	if _, err := os.Stat(LogPath()); os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withTempDataDir(t)

	Log(Entry{User: "alice", Operation: "push"})
	Log(Entry{User: "bob", Operation: "pull"})
	Log(Entry{User: "charlie", Operation: "init"})

	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	withTempDataDir(t)

	entry := Entry{
		User:         "testuser",
		UserUUID:     "test-uuid",
		Operation:    "push",
		Project:      "backend",
		EnvFile:      ".env",
		CreatedCount: 3,
		UpdatedCount: 1,
	}
	Log(entry)

	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.Operation != "push" {
		t.Errorf("Expected operation push, got %s", parsed.Operation)
	}
	if parsed.Project != "backend" {
		t.Errorf("Expected project backend, got %s", parsed.Project)
	}
	if parsed.CreatedCount != 3 {
		t.Errorf("Expected created_count 3, got %d", parsed.CreatedCount)
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	withTempDataDir(t)

	Log(Entry{User: "testuser", Operation: "pull"})

	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	// Check timestamp format: 2006-01-02T15:04:05.000000Z.
	if parsed.Timestamp == "" {
		t.Errorf("Timestamp should be auto-set")
	}
	if !strings.HasSuffix(parsed.Timestamp, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", parsed.Timestamp)
	}
	if !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", parsed.Timestamp)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	withTempDataDir(t)

	Log(Entry{User: "testuser", Operation: "status"})

	data, err := os.ReadFile(LogPath())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	line := strings.TrimSpace(string(data))

	// Check that optional fields are not present.
	if strings.Contains(line, `"project"`) {
		t.Errorf("Empty project field should be omitted")
	}
	if strings.Contains(line, `"mode"`) {
		t.Errorf("Empty mode field should be omitted")
	}
	if strings.Contains(line, `"created_count"`) {
		t.Errorf("Zero created_count field should be omitted")
	}
}

func TestLog_NoDataPath(t *testing.T) {
	original := configs.UserKotareSettings
	configs.UserKotareSettings = &configs.UserSettings{}
	defer func() {
		configs.UserKotareSettings = original
	}()

	// Log should not panic or error.
	Log(Entry{User: "testuser", Operation: "push"}) // Should silently do nothing.
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2026-01-15T10:30:00.123456Z","user":"alice","op":"push"}
{"ts":"2026-01-15T10:35:00.456789Z","user":"bob","op":"pull"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].User != "alice" {
		t.Errorf("Expected first user alice, got %s", entries[0].User)
	}
	if entries[1].Operation != "pull" {
		t.Errorf("Expected second op pull, got %s", entries[1].Operation)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-15T10:30:00.123456Z","user":"alice","op":"push"}
this is not valid json
{"ts":"2026-01-15T10:35:00.456789Z","user":"bob","op":"pull"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}

func TestLogPath_NoDataDir(t *testing.T) {
	original := configs.UserKotareSettings
	configs.UserKotareSettings = &configs.UserSettings{}
	defer func() {
		configs.UserKotareSettings = original
	}()

	if path := LogPath(); path != "" {
		t.Errorf("Expected empty path, got %s", path)
	}
}
