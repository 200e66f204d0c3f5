// Package provisioning runs an issuance: it validates the run parameters,
// reads the roster, creates one API key per student and writes the
// reconciliation report.
//
// The run is a fixed sequence of phases sharing a *Context. Each phase
// reads what earlier phases stored in State and adds its own results:
//   - validation: run parameter checks
//   - roster-shape: required header columns
//   - extraction: roster parsing
//   - confirmation: optional interactive prompt
//   - issuance: one key creation call per student
//   - report: reconciliation CSV
//   - archive: optional upload of the report to object storage
package provisioning
