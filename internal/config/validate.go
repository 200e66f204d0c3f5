package config

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/imamik/rosterkeys/internal/apperr"
)

var (
	dateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	domainRegex = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
)

// ValidateRunParameters checks every parameter and returns a
// *apperr.ValidationError listing all problems, or nil.
// Problems are reported in a fixed order: limit, courseCode, section, term,
// date, emailDomain, output.
func ValidateRunParameters(p RunParameters) error {
	var problems []string

	// Limit
	switch {
	case math.IsNaN(p.SpendingLimit):
		problems = append(problems, "limit must be a valid number")
	case p.SpendingLimit <= 0:
		problems = append(problems, "limit must be greater than 0")
	case math.IsInf(p.SpendingLimit, 0):
		problems = append(problems, "limit must be a finite number")
	}

	problems = appendIdentifier(problems, "courseCode", p.CourseCode)
	problems = appendIdentifier(problems, "section", p.Section)
	problems = appendIdentifier(problems, "term", p.Term)

	if p.IssueDate != nil && !IsValidDate(*p.IssueDate) {
		problems = append(problems, "date must be in YYYY-MM-DD format")
	}

	if p.EmailDomain != nil {
		switch {
		case strings.TrimSpace(*p.EmailDomain) == "":
			problems = append(problems, "emailDomain cannot be empty")
		case !IsValidDomain(*p.EmailDomain):
			problems = append(problems, "emailDomain must be a valid domain (e.g., myseneca.ca) without @ symbol")
		}
	}

	if p.Output != nil && strings.TrimSpace(*p.Output) == "" {
		problems = append(problems, "output cannot be empty")
	}

	if len(problems) > 0 {
		return &apperr.ValidationError{Problems: problems}
	}
	return nil
}

// appendIdentifier validates a required single-token value such as a course code.
func appendIdentifier(problems []string, field, value string) []string {
	switch {
	case value == "":
		return append(problems, field+" is required")
	case strings.TrimSpace(value) == "":
		return append(problems, field+" cannot be empty")
	case hasSpace(value):
		return append(problems, field+" cannot contain spaces")
	}
	return problems
}

// IsValidDomain reports whether domain looks like a bare email domain.
func IsValidDomain(domain string) bool {
	return !strings.Contains(domain, "@") &&
		strings.Contains(domain, ".") &&
		!hasSpace(domain) &&
		len(domain) > 3 &&
		domainRegex.MatchString(domain)
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
