// Package renderers turns mirrored records into the prose used as embedding
// input. Each kind has one render function that walks the raw field mapping
// and produces a few plain-English sentences; identifiers never appear in
// the output. Rendering is pure: no I/O, no mutation of the record.
package renderers
