package roster

import (
	"os"
	"strings"

	"github.com/imamik/rosterkeys/internal/apperr"
)

// ValidateShape checks that the first line of the file mentions every
// required column.
func ValidateShape(path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Wrap(err, "failed to read CSV file %s", path)
	}
	return ValidateHeader(firstLine(string(data)))
}

// ValidateHeader checks a raw header line for the required columns.
func ValidateHeader(line string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !strings.Contains(line, col) {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return apperr.Operational("Missing required columns: %s\nExpected columns: %s",
			strings.Join(missing, ", "), strings.Join(RequiredColumns, ", "))
	}
	return nil
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[:i]
	}
	return content
}
