// Package naming provides consistent names for issued keys and run artifacts.
//
// Key names follow "{email} {date} {tags...}" so keys can be matched back to
// a student and filtered by course in the provider dashboard. Report files
// follow "{course}-{section}-{term}-{date}.csv".
package naming
