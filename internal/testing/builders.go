package testing

import (
	"github.com/imamik/rosterkeys/internal/config"
)

// ParamsBuilder provides a fluent interface for building run parameters.
type ParamsBuilder struct {
	params config.RunParameters
}

// NewParamsBuilder creates a builder preloaded with valid parameters for
// IPC144 NAA 2251 with a $10 limit and an explicit provisioning key.
func NewParamsBuilder() *ParamsBuilder {
	key := "sk-or-prov-test"
	return &ParamsBuilder{
		params: config.RunParameters{
			ProvisioningKey: &key,
			SpendingLimit:   10,
			CourseCode:      "IPC144",
			Section:         "NAA",
			Term:            "2251",
		},
	}
}

// WithCourse sets the course code, section and term.
func (b *ParamsBuilder) WithCourse(course, section, term string) *ParamsBuilder {
	b.params.CourseCode = course
	b.params.Section = section
	b.params.Term = term
	return b
}

// WithLimit sets the spending limit.
func (b *ParamsBuilder) WithLimit(limit float64) *ParamsBuilder {
	b.params.SpendingLimit = limit
	return b
}

// WithDate sets an explicit issue date.
func (b *ParamsBuilder) WithDate(date string) *ParamsBuilder {
	b.params.IssueDate = &date
	return b
}

// WithOutput sets an explicit report path.
func (b *ParamsBuilder) WithOutput(path string) *ParamsBuilder {
	b.params.Output = &path
	return b
}

// WithEmailDomain sets an explicit email domain.
func (b *ParamsBuilder) WithEmailDomain(domain string) *ParamsBuilder {
	b.params.EmailDomain = &domain
	return b
}

// WithoutProvisioningKey clears the explicit provisioning key.
func (b *ParamsBuilder) WithoutProvisioningKey() *ParamsBuilder {
	b.params.ProvisioningKey = nil
	return b
}

// Build returns a copy of the parameters. Pointer fields are copied so later
// builder calls do not change earlier results.
func (b *ParamsBuilder) Build() config.RunParameters {
	p := b.params
	p.ProvisioningKey = clonePtr(p.ProvisioningKey)
	p.IssueDate = clonePtr(p.IssueDate)
	p.Output = clonePtr(p.Output)
	p.EmailDomain = clonePtr(p.EmailDomain)
	return p
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
