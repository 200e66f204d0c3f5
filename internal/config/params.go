package config

import "time"

// RunParameters are the per-run inputs supplied on the command line.
// Optional values are pointers: nil means the flag was not given, which is
// different from a flag given with an empty value.
type RunParameters struct {
	ProvisioningKey *string
	SpendingLimit   float64
	CourseCode      string
	Section         string
	Term            string
	IssueDate       *string
	Output          *string
	EmailDomain     *string
}

// Date returns the issue date, or the UTC calendar date of now as
// YYYY-MM-DD when none was given.
func (p RunParameters) Date(now time.Time) string {
	if p.IssueDate != nil && *p.IssueDate != "" {
		return *p.IssueDate
	}
	return now.UTC().Format(DateLayout)
}

// Domain returns the email domain, falling back to def.
func (p RunParameters) Domain(def string) string {
	if p.EmailDomain != nil && *p.EmailDomain != "" {
		return *p.EmailDomain
	}
	if def == "" {
		return DefaultEmailDomain
	}
	return def
}

// ExplicitKey returns the provisioning key passed on the command line, if any.
func (p RunParameters) ExplicitKey() string {
	if p.ProvisioningKey == nil {
		return ""
	}
	return *p.ProvisioningKey
}
