package provisioning

import (
	"fmt"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/report"
	"github.com/imamik/rosterkeys/internal/util/naming"
)

// ReportPhase writes the reconciliation CSV.
type ReportPhase struct{}

// NewReportPhase creates a new report phase.
func NewReportPhase() *ReportPhase {
	return &ReportPhase{}
}

// Name implements the Phase interface.
func (rp *ReportPhase) Name() string {
	return phaseReport
}

// Provision implements the Phase interface.
func (rp *ReportPhase) Provision(ctx *Context) error {
	path := ReportPath(ctx)
	if err := report.Write(ctx.State.Records, path); err != nil {
		return err
	}

	ctx.State.ReportPath = path
	ctx.Observer.Printf("\nCreated %d API keys", len(ctx.State.Records))
	ctx.Observer.Printf("Output saved to: %s", path)
	return nil
}

// ReportPath returns the explicit output path, or the default
// <course>-<section>-<term>-<date>.csv in the working directory.
func ReportPath(ctx *Context) string {
	if ctx.Params.Output != nil && *ctx.Params.Output != "" {
		return *ctx.Params.Output
	}
	p := ctx.Params
	return naming.ReportFile(p.CourseCode, p.Section, p.Term, ctx.IssueDate())
}

// BucketCheckPhase verifies the archive bucket is reachable so a
// misconfigured bucket fails the run before keys are created.
type BucketCheckPhase struct{}

// NewBucketCheckPhase creates a new bucket check phase.
func NewBucketCheckPhase() *BucketCheckPhase {
	return &BucketCheckPhase{}
}

// Name implements the Phase interface.
func (bp *BucketCheckPhase) Name() string {
	return phaseBucketCheck
}

// Provision implements the Phase interface.
func (bp *BucketCheckPhase) Provision(ctx *Context) error {
	if ctx.Archiver == nil {
		return apperr.Operational("archive check requires an object storage client")
	}

	bucket := ctx.Settings.Archive.Bucket
	exists, err := ctx.Archiver.BucketExists(ctx, bucket)
	if err != nil {
		return apperr.Wrap(err, "check archive bucket %s", bucket)
	}
	if !exists {
		return apperr.Operational("archive bucket %s does not exist", bucket)
	}
	return nil
}

// ArchivePhase uploads the written report to object storage.
type ArchivePhase struct{}

// NewArchivePhase creates a new archive phase.
func NewArchivePhase() *ArchivePhase {
	return &ArchivePhase{}
}

// Name implements the Phase interface.
func (ap *ArchivePhase) Name() string {
	return phaseArchive
}

// Provision implements the Phase interface.
func (ap *ArchivePhase) Provision(ctx *Context) error {
	if ctx.Archiver == nil {
		return apperr.Operational("archive phase requires an object storage client")
	}

	cfg := ctx.Settings.Archive
	key := naming.ArchiveKey(cfg.Prefix, ctx.State.ReportPath)
	if err := ctx.Archiver.PutObject(ctx, cfg.Bucket, key, report.Render(ctx.State.Records)); err != nil {
		return apperr.Wrap(err, "archive report to s3://%s/%s", cfg.Bucket, key)
	}

	ctx.State.ArchiveKey = key
	ctx.Observer.Printf("Archived report to: %s", fmt.Sprintf("s3://%s/%s", cfg.Bucket, key))
	return nil
}
