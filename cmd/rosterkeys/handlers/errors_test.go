package handlers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/provisioning"
)

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err: &provisioning.PhaseError{Phase: "validation", Err: &apperr.ValidationError{
				Problems: []string{"limit must be greater than 0", "term is required"},
			}},
			want: "Validation Error:\nValidation failed:\n  - limit must be greater than 0\n  - term is required\n",
		},
		{
			name: "operational inside phase",
			err:  &provisioning.PhaseError{Phase: "extraction", Err: apperr.Operational("No students found in CSV file")},
			want: "Error: No students found in CSV file\n",
		},
		{
			name: "plain",
			err:  errors.New(`required flag(s) "course" not set`),
			want: "Error: required flag(s) \"course\" not set\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintError_Nil(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, nil)
	assert.Empty(t, buf.String())
}
