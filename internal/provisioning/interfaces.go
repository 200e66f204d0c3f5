package provisioning

import (
	"context"

	"github.com/imamik/rosterkeys/internal/platform/openrouter"
)

// Phase defines the interface for an issuance phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the logic for this phase.
	Provision(ctx *Context) error
}

// KeyCreator creates one API key. Implemented by openrouter.Client.
type KeyCreator interface {
	CreateKey(ctx context.Context, req openrouter.CreateKeyRequest) (*openrouter.CreatedKey, error)
}

// Archiver stores a finished report. Implemented by s3.Client.
type Archiver interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, key string, data []byte) error
}

// ConfirmFunc asks the operator whether to proceed with issuing keys for the
// extracted students.
type ConfirmFunc func(ctx context.Context, summary string) (bool, error)
