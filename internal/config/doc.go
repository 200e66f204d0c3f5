// Package config holds the inputs of an issuance run.
//
// [RunParameters] is built once from command-line flags and checked with
// [ValidateRunParameters] before any file is read or any key is created.
// [File] is the optional YAML configuration that supplies defaults the
// flags do not cover (email domain, API endpoint, archiving, metrics).
package config
