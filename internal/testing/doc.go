// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ParamsBuilder: Fluent builder for run parameters
//   - Roster fixtures: sample Blackboard exports written to temp files
//   - MockKeyCreator, MockArchiver: shared fakes for the provider and object storage
//
// Usage:
//
//	params := testing.NewParamsBuilder().
//	    WithCourse("IPC144", "NAA", "2251").
//	    WithLimit(10).
//	    Build()
//
//	path := testing.WriteRoster(t, testing.ThreeStudentRoster)
//	creator := testing.NewMockKeyCreator().FailOn(2, errors.New("rate limited"))
package testing
