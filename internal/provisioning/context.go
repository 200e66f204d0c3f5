package provisioning

import (
	"context"
	"os"
	"time"

	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/metrics"
	"github.com/imamik/rosterkeys/internal/report"
	"github.com/imamik/rosterkeys/internal/roster"
)

// State holds the shared results of the phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	Students   []roster.Student
	Records    []report.Record
	ReportPath string
	ArchiveKey string
}

// NewState creates an empty run state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for an issuance phase.
type Context struct {
	context.Context
	RosterPath string
	Params     config.RunParameters
	Settings   *config.File
	State      *State
	Creator    KeyCreator
	Observer   Observer

	// Optional collaborators. Nil disables the feature.
	Archiver Archiver
	Metrics  *metrics.Recorder

	Now func() time.Time
}

// NewContext creates a new run context with a console observer on stderr.
func NewContext(
	ctx context.Context,
	rosterPath string,
	params config.RunParameters,
	settings *config.File,
	creator KeyCreator,
) *Context {
	if settings == nil {
		settings = config.Default()
	}
	return &Context{
		Context:    ctx,
		RosterPath: rosterPath,
		Params:     params,
		Settings:   settings,
		State:      NewState(),
		Creator:    creator,
		Observer:   NewConsoleObserver(os.Stderr, 0),
		Now:        time.Now,
	}
}

// now returns the current time from the context clock.
func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// IssueDate returns the date stamped on keys and the report filename.
func (c *Context) IssueDate() string {
	return c.Params.Date(c.now())
}
