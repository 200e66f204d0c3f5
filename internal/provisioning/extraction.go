package provisioning

import (
	"fmt"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/roster"
)

// ExtractionPhase reads the students from the roster.
type ExtractionPhase struct{}

// NewExtractionPhase creates a new extraction phase.
func NewExtractionPhase() *ExtractionPhase {
	return &ExtractionPhase{}
}

// Name implements the Phase interface.
func (ep *ExtractionPhase) Name() string {
	return phaseExtraction
}

// Provision implements the Phase interface.
func (ep *ExtractionPhase) Provision(ctx *Context) error {
	students, err := roster.Extract(ctx.RosterPath, ctx.Params.Domain(ctx.Settings.EmailDomain))
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return apperr.Operational("No students found in CSV file")
	}

	ctx.Observer.Printf("Found %d students in %s", len(students), ctx.RosterPath)
	if ctx.Metrics != nil {
		ctx.Metrics.StudentsFound(len(students))
	}
	ctx.State.Students = students
	return nil
}

// ConfirmationPhase asks the operator before any key is created.
type ConfirmationPhase struct {
	confirm ConfirmFunc
}

// NewConfirmationPhase creates a confirmation phase using confirm.
func NewConfirmationPhase(confirm ConfirmFunc) *ConfirmationPhase {
	return &ConfirmationPhase{confirm: confirm}
}

// Name implements the Phase interface.
func (cp *ConfirmationPhase) Name() string {
	return phaseConfirmation
}

// Provision implements the Phase interface.
func (cp *ConfirmationPhase) Provision(ctx *Context) error {
	summary := fmt.Sprintf("Create %d API keys with a $%s USD limit for %s %s (%s)?",
		len(ctx.State.Students), formatLimit(ctx.Params.SpendingLimit),
		ctx.Params.CourseCode, ctx.Params.Section, ctx.Params.Term)

	ok, err := cp.confirm(ctx, summary)
	if err != nil {
		return apperr.Wrap(err, "confirmation prompt failed")
	}
	if !ok {
		return apperr.Operational("aborted: no keys were created")
	}
	return nil
}
