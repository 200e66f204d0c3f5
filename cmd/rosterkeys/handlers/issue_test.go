package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rosterkeys/internal/apperr"
	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/metrics"
	"github.com/imamik/rosterkeys/internal/platform/openrouter"
	"github.com/imamik/rosterkeys/internal/provisioning"
	fixtures "github.com/imamik/rosterkeys/internal/testing"
	"github.com/imamik/rosterkeys/internal/util/ptr"
)

type pushCall struct {
	cfg       config.MetricsConfig
	succeeded bool
}

// saveAndRestoreFactories restores the handler factories after a test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfig := loadConfig
	origNewKeyCreator := newKeyCreator
	origNewArchiver := newArchiver
	origPushMetrics := pushMetrics
	origPrompt := promptProvisioningKey
	origConfirm := confirmIssue
	origIsTerminal := isTerminal
	origStderr := stderr
	origNow := now

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newKeyCreator = origNewKeyCreator
		newArchiver = origNewArchiver
		pushMetrics = origPushMetrics
		promptProvisioningKey = origPrompt
		confirmIssue = origConfirm
		isTerminal = origIsTerminal
		stderr = origStderr
		now = origNow
	})
}

// setup installs stubs and returns the creator, captured stderr and options
// for a valid three-student run.
func setup(t *testing.T) (*fixtures.MockKeyCreator, *bytes.Buffer, IssueOptions) {
	t.Helper()
	saveAndRestoreFactories(t)
	t.Setenv(openrouter.ProvisioningKeyEnvVar, "")

	creator := fixtures.NewMockKeyCreator()
	var out bytes.Buffer
	loadConfig = func(string) (*config.File, error) { return config.Default(), nil }
	newKeyCreator = func(string) provisioning.KeyCreator { return creator }
	isTerminal = func(*os.File) bool { return false }
	stderr = &out
	now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }

	return creator, &out, IssueOptions{
		RosterPath: fixtures.WriteRoster(t, "Username,Student ID\namy,1\nbob,2\ncat,3\n"),
		Params: fixtures.NewParamsBuilder().
			WithOutput(filepath.Join(t.TempDir(), "keys.csv")).
			Build(),
	}
}

func TestIssue_Success(t *testing.T) {
	creator, out, opts := setup(t)

	err := Issue(context.Background(), opts)

	require.NoError(t, err)
	assert.Equal(t, 3, creator.Calls())
	assert.FileExists(t, *opts.Params.Output)

	text := out.String()
	assert.Contains(t, text, "Found 3 students in "+opts.RosterPath)
	assert.Contains(t, text, "Created 3 API keys")
	assert.Contains(t, text, "Summary: IPC144 NAA 2251")
	assert.Contains(t, text, "Run ID:")
}

func TestIssue_ValidationErrorIsReturnedUnchanged(t *testing.T) {
	creator, _, opts := setup(t)
	opts.Params.Term = "fall 2025"

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"term cannot contain spaces"}, ve.Problems)
	assert.Zero(t, creator.Calls())
}

func TestIssue_ValidationRunsBeforeConfigAndPrompts(t *testing.T) {
	creator, _, opts := setup(t)
	opts.Params.SpendingLimit = 0
	opts.Params.ProvisioningKey = nil
	opts.Interactive = true

	configLoaded, prompted := false, false
	loadConfig = func(string) (*config.File, error) {
		configLoaded = true
		return nil, errors.New("bad yaml")
	}
	isTerminal = func(*os.File) bool { return true }
	promptProvisioningKey = func(context.Context) (string, error) {
		prompted = true
		return "sk-or-prompted", nil
	}

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"limit must be greater than 0"}, ve.Problems)
	assert.False(t, configLoaded)
	assert.False(t, prompted)
	assert.Zero(t, creator.Calls())
}

func TestIssue_ConfigLoadError(t *testing.T) {
	creator, _, opts := setup(t)
	loadConfig = func(string) (*config.File, error) { return nil, errors.New("bad yaml") }

	err := Issue(context.Background(), opts)

	require.EqualError(t, err, "bad yaml")
	assert.Zero(t, creator.Calls())
}

func TestIssue_UsesConfiguredBaseURL(t *testing.T) {
	_, _, opts := setup(t)
	var gotURL string
	loadConfig = func(string) (*config.File, error) {
		f := config.Default()
		f.OpenRouter.BaseURL = "https://proxy.example/api/v1"
		return f, nil
	}
	newKeyCreator = func(baseURL string) provisioning.KeyCreator {
		gotURL = baseURL
		return fixtures.NewMockKeyCreator()
	}

	require.NoError(t, Issue(context.Background(), opts))
	assert.Equal(t, "https://proxy.example/api/v1", gotURL)
}

func TestIssue_PushesMetricsOnSuccessAndFailure(t *testing.T) {
	tests := []struct {
		name      string
		failOn    int
		succeeded bool
	}{
		{"success", 0, true},
		{"failure", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator, _, opts := setup(t)
			if tt.failOn > 0 {
				creator.FailOn(tt.failOn, errors.New("provider said no"))
			}
			opts.Pushgateway = ptr.String("http://pushgateway:9091")

			var calls []pushCall
			pushMetrics = func(_ context.Context, cfg config.MetricsConfig, _ *metrics.Recorder, succeeded bool) error {
				calls = append(calls, pushCall{cfg: cfg, succeeded: succeeded})
				return nil
			}

			err := Issue(context.Background(), opts)

			assert.Equal(t, tt.succeeded, err == nil)
			require.Len(t, calls, 1)
			assert.Equal(t, tt.succeeded, calls[0].succeeded)
			assert.Equal(t, "http://pushgateway:9091", calls[0].cfg.Pushgateway)
			assert.Equal(t, config.DefaultMetricsJob, calls[0].cfg.Job)
		})
	}
}

func TestIssue_MetricsPushErrorIsOnlyLogged(t *testing.T) {
	_, out, opts := setup(t)
	opts.Pushgateway = ptr.String("http://pushgateway:9091")
	pushMetrics = func(context.Context, config.MetricsConfig, *metrics.Recorder, bool) error {
		return errors.New("connection refused")
	}

	require.NoError(t, Issue(context.Background(), opts))
	assert.Contains(t, out.String(), "Warning: connection refused")
}

func TestIssue_NoMetricsWithoutPushgateway(t *testing.T) {
	_, _, opts := setup(t)
	pushMetrics = func(context.Context, config.MetricsConfig, *metrics.Recorder, bool) error {
		t.Fatal("metrics must not be pushed")
		return nil
	}

	require.NoError(t, Issue(context.Background(), opts))
}

func TestIssue_ArchivesWhenBucketGiven(t *testing.T) {
	_, out, opts := setup(t)
	opts.ArchiveBucket = ptr.String("reports")
	archiver := &fixtures.MockArchiver{}
	var gotCfg config.ArchiveConfig
	newArchiver = func(_ context.Context, cfg config.ArchiveConfig) (provisioning.Archiver, error) {
		gotCfg = cfg
		return archiver, nil
	}

	require.NoError(t, Issue(context.Background(), opts))

	assert.Equal(t, "reports", gotCfg.Bucket)
	assert.Equal(t, "reports", archiver.Bucket)
	assert.Equal(t, "keys.csv", archiver.Key)
	assert.Contains(t, out.String(), "s3://reports/keys.csv")
}

func TestIssue_ArchiveClientError(t *testing.T) {
	creator, _, opts := setup(t)
	opts.ArchiveBucket = ptr.String("reports")
	newArchiver = func(context.Context, config.ArchiveConfig) (provisioning.Archiver, error) {
		return nil, errors.New("no credentials")
	}

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")
	assert.Zero(t, creator.Calls())
}

func TestIssue_InteractiveRequiresTerminal(t *testing.T) {
	creator, _, opts := setup(t)
	opts.Interactive = true

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
	assert.Zero(t, creator.Calls())
}

func TestIssue_InteractivePromptsForMissingKey(t *testing.T) {
	creator, _, opts := setup(t)
	opts.Interactive = true
	opts.Params.ProvisioningKey = nil
	isTerminal = func(*os.File) bool { return true }

	prompted := false
	promptProvisioningKey = func(context.Context) (string, error) {
		prompted = true
		return "sk-or-typed", nil
	}
	var summary string
	confirmIssue = func(_ context.Context, s string) (bool, error) {
		summary = s
		return true, nil
	}

	require.NoError(t, Issue(context.Background(), opts))

	assert.True(t, prompted)
	assert.Equal(t, "Create 3 API keys with a $10 USD limit for IPC144 NAA (2251)?", summary)
	for _, req := range creator.Requests() {
		assert.Equal(t, "sk-or-typed", req.ProvisioningKey)
	}
	assert.Equal(t, 3, creator.Calls())
}

func TestIssue_InteractiveSkipsPromptWhenKeyKnown(t *testing.T) {
	_, _, opts := setup(t)
	opts.Interactive = true
	isTerminal = func(*os.File) bool { return true }
	promptProvisioningKey = func(context.Context) (string, error) {
		t.Fatal("prompt must not run")
		return "", nil
	}
	confirmIssue = func(context.Context, string) (bool, error) { return true, nil }

	require.NoError(t, Issue(context.Background(), opts))
}

func TestIssue_InteractiveDeclined(t *testing.T) {
	creator, _, opts := setup(t)
	opts.Interactive = true
	isTerminal = func(*os.File) bool { return true }
	confirmIssue = func(context.Context, string) (bool, error) { return false, nil }

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
	assert.Zero(t, creator.Calls())
	assert.NoFileExists(t, *opts.Params.Output)
}

func TestIssue_FailureStopsAndWritesNoReport(t *testing.T) {
	creator, out, opts := setup(t)
	creator.FailOn(2, errors.New("provider said no"))

	err := Issue(context.Background(), opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bob")
	assert.Equal(t, 2, creator.Calls())
	assert.NoFileExists(t, *opts.Params.Output)
	assert.Contains(t, out.String(), "Failed to create key for bob: provider said no")
}

func TestApplyOverrides(t *testing.T) {
	settings := config.Default()
	settings.Archive.Bucket = "from-file"
	settings.Metrics.Pushgateway = "http://from-file:9091"

	applyOverrides(settings, IssueOptions{})
	assert.Equal(t, "from-file", settings.Archive.Bucket)
	assert.Equal(t, "http://from-file:9091", settings.Metrics.Pushgateway)

	applyOverrides(settings, IssueOptions{ArchiveBucket: ptr.String(""), Pushgateway: ptr.String(" http://flag:9091 ")})
	assert.Empty(t, settings.Archive.Bucket)
	assert.Equal(t, "http://flag:9091", settings.Metrics.Pushgateway)
}
