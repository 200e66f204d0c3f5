// Package tags builds the tag set attached to every key of an issuance run.
//
// Tags are free-text labels (course, section, term, role) used to filter
// keys later in the provider's dashboard and bulk tooling. Empty values
// are dropped so a partially specified run never produces blank tags.
package tags
