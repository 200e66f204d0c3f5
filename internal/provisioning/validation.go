package provisioning

import (
	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/roster"
)

const (
	phaseValidation   = "validation"
	phaseShape        = "roster-shape"
	phaseExtraction   = "extraction"
	phaseConfirmation = "confirmation"
	phaseIssuance     = "issuance"
	phaseReport       = "report"
	phaseArchive      = "archive"
	phaseBucketCheck  = "archive-check"
)

// ValidationPhase checks the run parameters before any file or network work.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return phaseValidation
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	return config.ValidateRunParameters(ctx.Params)
}

// ShapePhase checks that the roster header names the required columns.
type ShapePhase struct{}

// NewShapePhase creates a new roster shape phase.
func NewShapePhase() *ShapePhase {
	return &ShapePhase{}
}

// Name implements the Phase interface.
func (sp *ShapePhase) Name() string {
	return phaseShape
}

// Provision implements the Phase interface.
func (sp *ShapePhase) Provision(ctx *Context) error {
	return roster.ValidateShape(ctx.RosterPath)
}
