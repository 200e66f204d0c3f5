package naming

import (
	"fmt"
	"path"
	"strings"
)

// KeyName returns the display name of a student's key.
func KeyName(email, date string, tags []string) string {
	parts := make([]string, 0, len(tags)+2)
	parts = append(parts, email, date)
	parts = append(parts, tags...)
	return strings.Join(parts, " ")
}

// ReportFile returns the default reconciliation CSV filename.
func ReportFile(course, section, term, date string) string {
	return fmt.Sprintf("%s-%s-%s-%s.csv", course, section, term, date)
}

// ArchiveKey returns the object key for an archived report.
func ArchiveKey(prefix, reportPath string) string {
	name := path.Base(strings.ReplaceAll(reportPath, "\\", "/"))
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}
