// Package roster reads learning-management-system roster exports.
//
// [ValidateShape] rejects files whose header lacks the two required
// columns before anything else happens. [Extract] turns the rows into
// [Student] records, resolving each field from its canonical column name
// or its camelCase alias.
package roster
