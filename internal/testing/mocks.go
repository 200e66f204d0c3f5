package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/imamik/rosterkeys/internal/platform/openrouter"
	"github.com/imamik/rosterkeys/internal/util/naming"
)

// MockKeyCreator records key creation requests and answers with
// deterministic keys "sk-or-v1-<n>" and hashes "hash-<n>".
type MockKeyCreator struct {
	mu       sync.Mutex
	requests []openrouter.CreateKeyRequest
	failOn   int
	failErr  error
}

// NewMockKeyCreator creates a creator that always succeeds.
func NewMockKeyCreator() *MockKeyCreator {
	return &MockKeyCreator{}
}

// FailOn makes the n-th call (1-based) fail with err.
func (m *MockKeyCreator) FailOn(n int, err error) *MockKeyCreator {
	m.failOn = n
	m.failErr = err
	return m
}

// CreateKey implements provisioning.KeyCreator.
func (m *MockKeyCreator) CreateKey(_ context.Context, req openrouter.CreateKeyRequest) (*openrouter.CreatedKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	n := len(m.requests)
	if n == m.failOn {
		return nil, m.failErr
	}
	return &openrouter.CreatedKey{
		KeyName: naming.KeyName(req.Email, req.Date, req.Tags),
		APIKey:  fmt.Sprintf("sk-or-v1-%d", n),
		Hash:    fmt.Sprintf("hash-%d", n),
	}, nil
}

// Requests returns the requests received so far.
func (m *MockKeyCreator) Requests() []openrouter.CreateKeyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]openrouter.CreateKeyRequest(nil), m.requests...)
}

// Calls returns the number of CreateKey calls.
func (m *MockKeyCreator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// MockArchiver records the last uploaded object. Buckets exist unless
// Missing is set.
type MockArchiver struct {
	Bucket   string
	Key      string
	Data     []byte
	Err      error
	Missing  bool
	CheckErr error
	Checked  []string
}

// BucketExists implements provisioning.Archiver.
func (m *MockArchiver) BucketExists(_ context.Context, bucketName string) (bool, error) {
	m.Checked = append(m.Checked, bucketName)
	if m.CheckErr != nil {
		return false, m.CheckErr
	}
	return !m.Missing, nil
}

// PutObject implements provisioning.Archiver.
func (m *MockArchiver) PutObject(_ context.Context, bucketName, key string, data []byte) error {
	m.Bucket, m.Key, m.Data = bucketName, key, data
	return m.Err
}
