package provisioning

import (
	"strconv"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/platform/openrouter"
	"github.com/imamik/rosterkeys/internal/report"
	"github.com/imamik/rosterkeys/internal/roster"
	"github.com/imamik/rosterkeys/internal/util/tags"
)

// IssuancePhase creates one key per extracted student.
type IssuancePhase struct{}

// NewIssuancePhase creates a new issuance phase.
func NewIssuancePhase() *IssuancePhase {
	return &IssuancePhase{}
}

// Name implements the Phase interface.
func (ip *IssuancePhase) Name() string {
	return phaseIssuance
}

// Provision implements the Phase interface.
func (ip *IssuancePhase) Provision(ctx *Context) error {
	records, err := IssueKeys(ctx, ctx.State.Students)
	if err != nil {
		return err
	}
	ctx.State.Records = records
	return nil
}

// IssueKeys creates one key per student, in roster order, one call at a time.
// The provisioning key is resolved once before the first call. The first
// failed call aborts the run: no records are returned and keys created
// before the failure stay live on the provider side.
func IssueKeys(ctx *Context, students []roster.Student) ([]report.Record, error) {
	provisioningKey, err := openrouter.ResolveProvisioningKey(ctx.Params.ExplicitKey())
	if err != nil {
		return nil, apperr.Operational("%s", err)
	}

	courseTags := tags.ForCourse(ctx.Params.CourseCode, ctx.Params.Section, ctx.Params.Term)
	date := ctx.IssueDate()

	ctx.Observer.Printf("Creating API keys with $%s USD limit", formatLimit(ctx.Params.SpendingLimit))
	ctx.Observer.Printf("Tags: %s", tags.Join(courseTags))

	records := make([]report.Record, 0, len(students))
	for i, student := range students {
		if err := ctx.Err(); err != nil {
			return nil, apperr.Wrap(err, "issuance interrupted after %d of %d keys", i, len(students))
		}

		ctx.Observer.Printf("Creating key %d/%d for %s...", i+1, len(students), student.Username)
		LogKeyCreating(ctx.Observer, student.Username, student.Email)

		created, err := ctx.Creator.CreateKey(ctx, openrouter.CreateKeyRequest{
			ProvisioningKey: provisioningKey,
			Email:           student.Email,
			Limit:           ctx.Params.SpendingLimit,
			Tags:            courseTags,
			Date:            date,
		})
		if err != nil {
			ctx.Observer.Printf("Failed to create key for %s: %v", student.Username, err)
			LogKeyFailed(ctx.Observer, student.Username, err)
			if ctx.Metrics != nil {
				ctx.Metrics.KeyFailed()
			}
			return nil, apperr.Wrap(err, "create key for %s (%s)", student.Username, student.StudentID)
		}

		LogKeyCreated(ctx.Observer, student.Username, created.KeyName, created.Hash)
		ctx.Observer.Progress(phaseIssuance, i+1, len(students))
		if ctx.Metrics != nil {
			ctx.Metrics.KeyIssued()
		}

		records = append(records, report.Record{
			Name:      created.KeyName,
			Key:       created.APIKey,
			Hash:      created.Hash,
			Username:  student.Username,
			StudentID: student.StudentID,
			Email:     student.Email,
		})
	}

	return records, nil
}

// formatLimit renders a dollar amount without trailing zeros: 10, 2.5.
func formatLimit(limit float64) string {
	return strconv.FormatFloat(limit, 'f', -1, 64)
}

