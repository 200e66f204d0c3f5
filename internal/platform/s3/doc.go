// Package s3 provides a client for S3-compatible object storage.
//
// It is used to archive the reconciliation CSV of a successful issuance run
// to a bucket. Any S3-compatible service works; set an endpoint and
// path-style addressing for providers other than AWS.
package s3
