// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/metrics"
	"github.com/imamik/rosterkeys/internal/platform/openrouter"
	"github.com/imamik/rosterkeys/internal/platform/s3"
	"github.com/imamik/rosterkeys/internal/provisioning"
)

// IssueOptions carries everything the root command collected from flags.
type IssueOptions struct {
	RosterPath  string
	Params      config.RunParameters
	ConfigPath  string
	Interactive bool
	Verbose     bool

	// Overrides for config file values. Nil keeps the file value.
	ArchiveBucket *string
	Pushgateway   *string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig resolves and loads the optional config file.
	loadConfig = config.Load

	// newKeyCreator creates the key provisioning client.
	newKeyCreator = func(baseURL string) provisioning.KeyCreator {
		return openrouter.NewClient(baseURL)
	}

	// newArchiver creates the object storage client for report archiving.
	newArchiver = func(ctx context.Context, cfg config.ArchiveConfig) (provisioning.Archiver, error) {
		return s3.NewClient(ctx, cfg)
	}

	// pushMetrics pushes run metrics to the Pushgateway.
	pushMetrics = metrics.Push

	// promptProvisioningKey asks for the provisioning key on the terminal.
	promptProvisioningKey = runKeyPrompt

	// confirmIssue asks before any key is created.
	confirmIssue provisioning.ConfirmFunc = runConfirmPrompt

	// isTerminal reports whether f is attached to a terminal.
	isTerminal = func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	// stderr receives progress and the run summary.
	stderr io.Writer = os.Stderr

	// now is the run clock.
	now = time.Now
)

// Issue creates one API key per student in the roster and writes the
// reconciliation report.
//
// Steps:
//  1. Validates the run parameters, then loads the optional config file and
//     applies flag overrides
//  2. In interactive mode, prompts for a missing provisioning key
//  3. Runs the issuance phases (validation, roster checks, archive bucket check,
//     issuance, report, archive)
//  4. Pushes run metrics when a Pushgateway is configured, on success and failure
//  5. Prints the run summary
func Issue(ctx context.Context, opts IssueOptions) error {
	if err := config.ValidateRunParameters(opts.Params); err != nil {
		return err
	}

	settings, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyOverrides(settings, opts)

	runID := uuid.NewString()
	verbosity := 0
	if opts.Verbose {
		verbosity = 1
	}
	observer := provisioning.NewConsoleObserver(stderr, verbosity).
		WithFields(map[string]string{"run_id": runID})

	params := opts.Params
	var confirm provisioning.ConfirmFunc
	if opts.Interactive {
		if !isTerminal(os.Stdin) {
			return apperr.Operational("--interactive requires a terminal on stdin")
		}
		if err := ensureProvisioningKey(ctx, &params); err != nil {
			return err
		}
		confirm = confirmIssue
	}

	run := provisioning.NewContext(ctx, opts.RosterPath, params, settings, newKeyCreator(settings.OpenRouter.BaseURL))
	run.Observer = observer
	run.Now = now

	if settings.Archive.Enabled() {
		archiver, err := newArchiver(ctx, settings.Archive)
		if err != nil {
			return apperr.Wrap(err, "failed to create archive client")
		}
		run.Archiver = archiver
	}
	if settings.Metrics.Enabled() {
		run.Metrics = metrics.NewRecorder(params.CourseCode, params.Section, params.Term)
	}

	start := now()
	runErr := provisioning.RunPhases(run, provisioning.DefaultPhases(run, confirm))

	if run.Metrics != nil {
		finished := now()
		run.Metrics.RunFinished(finished.Sub(start), runErr, finished)
		if err := pushMetrics(ctx, settings.Metrics, run.Metrics, runErr == nil); err != nil {
			observer.Printf("Warning: %v", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	printSummary(stderr, summaryFromRun(run, runID), isTerminal(os.Stderr))
	return nil
}

// applyOverrides layers flag values over the config file.
func applyOverrides(settings *config.File, opts IssueOptions) {
	if opts.ArchiveBucket != nil {
		settings.Archive.Bucket = strings.TrimSpace(*opts.ArchiveBucket)
	}
	if opts.Pushgateway != nil {
		settings.Metrics.Pushgateway = strings.TrimSpace(*opts.Pushgateway)
	}
}

// ensureProvisioningKey prompts for the provisioning key when neither the
// flag nor the environment provides one.
func ensureProvisioningKey(ctx context.Context, params *config.RunParameters) error {
	if _, err := openrouter.ResolveProvisioningKey(params.ExplicitKey()); err == nil {
		return nil
	}

	key, err := promptProvisioningKey(ctx)
	if err != nil {
		return apperr.Wrap(err, "provisioning key prompt failed")
	}
	params.ProvisioningKey = &key
	return nil
}
