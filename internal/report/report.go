// Package report writes the reconciliation CSV of an issuance run.
//
// The format is fixed: header "name,key,hash,username,studentId,email", the
// name field double-quoted and every other field written as-is. The first
// three columns match what the provider's bulk tooling reads; the remaining
// columns are ignored by it. Values are not escaped, so a field containing a
// comma or quote would corrupt its row. Usernames, student IDs and provider
// keys never contain either, and escaping would change the byte layout the
// bulk tooling expects.
package report

import (
	"os"
	"strings"

	"github.com/imamik/rosterkeys/internal/apperr"
)

// Header is the first line of every report.
const Header = "name,key,hash,username,studentId,email"

// fileMode keeps issued secrets readable by the operator only.
const fileMode = 0o600

// Record is one issued key and the student it belongs to.
type Record struct {
	Name      string
	Key       string
	Hash      string
	Username  string
	StudentID string
	Email     string
}

// Render returns the report content. Lines are separated by "\n" with no
// trailing newline.
func Render(records []Record) []byte {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, Header)
	for _, r := range records {
		lines = append(lines, strings.Join([]string{
			`"` + r.Name + `"`,
			r.Key,
			r.Hash,
			r.Username,
			r.StudentID,
			r.Email,
		}, ","))
	}
	return []byte(strings.Join(lines, "\n"))
}

// Write renders records to path, replacing any existing file.
func Write(records []Record, path string) error {
	if err := os.WriteFile(path, Render(records), fileMode); err != nil {
		return apperr.Wrap(err, "failed to write report %s", path)
	}
	return nil
}
