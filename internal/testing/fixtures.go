package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// ThreeStudentRoster is a quoted Blackboard export with three students.
const ThreeStudentRoster = `"Last Name","First Name","Username","Student ID"
"Lovelace","Ada","alovelace","100"
"Turing","Alan","aturing","200"
"Hopper","Grace","ghopper","300"
`

// HeaderOnlyRoster has the required columns and no students.
const HeaderOnlyRoster = "Username,Student ID\n"

// MissingColumnsRoster lacks both required columns.
const MissingColumnsRoster = "Name,ID\nAda,100\n"

// WriteRoster writes content to roster.csv in a fresh temp dir and returns its path.
func WriteRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}
