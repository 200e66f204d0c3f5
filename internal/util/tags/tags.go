package tags

import (
	"strings"

	"github.com/imamik/rosterkeys/internal/config"
)

// Builder provides a fluent interface for building a tag set.
type Builder struct {
	tags []string
}

// NewBuilder creates an empty tag builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForCourse returns the standard tag set for a course section and term:
// [course, section, term, "student"] with empty entries removed.
func ForCourse(course, section, term string) []string {
	return NewBuilder().
		Add(course, section, term).
		WithRole(config.StudentTag).
		Build()
}

// Add appends each non-empty value in order.
func (b *Builder) Add(values ...string) *Builder {
	for _, v := range values {
		if v != "" {
			b.tags = append(b.tags, v)
		}
	}
	return b
}

// WithRole appends the role tag.
func (b *Builder) WithRole(role string) *Builder {
	return b.Add(role)
}

// Build returns a copy of the tags.
// Returns a copy to prevent external mutations.
func (b *Builder) Build() []string {
	result := make([]string, len(b.tags))
	copy(result, b.tags)
	return result
}

// Join renders tags for display, e.g. "CCP555, NSA, fall, student".
func Join(tags []string) string {
	return strings.Join(tags, ", ")
}
