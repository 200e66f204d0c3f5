package provisioning

import (
	"fmt"
	"time"
)

// PhaseError reports which phase stopped the run.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Pipeline is an ordered list of phases.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline running phases in the given order.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes the pipeline's phases.
func (p *Pipeline) Run(ctx *Context) error {
	return RunPhases(ctx, p.Phases)
}

// RunPhases executes all phases sequentially and stops at the first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	for _, phase := range phases {
		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return &PhaseError{Phase: phase.Name(), Err: err}
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}
	return nil
}

// DefaultPhases returns the phases of an issuance run. The confirmation
// phase is included when confirm is non-nil. When an archiver is configured
// the bucket is checked before any key is created and the report is
// uploaded last.
func DefaultPhases(ctx *Context, confirm ConfirmFunc) []Phase {
	archive := ctx.Archiver != nil && ctx.Settings != nil && ctx.Settings.Archive.Enabled()

	phases := []Phase{
		NewValidationPhase(),
		NewShapePhase(),
		NewExtractionPhase(),
	}
	if archive {
		phases = append(phases, NewBucketCheckPhase())
	}
	if confirm != nil {
		phases = append(phases, NewConfirmationPhase(confirm))
	}
	phases = append(phases, NewIssuancePhase(), NewReportPhase())
	if archive {
		phases = append(phases, NewArchivePhase())
	}
	return phases
}
