// Package pipeline fans FASTA records out to a fixed pool of scoring workers,
// stages each record's rows, and merges the staged rows back in input order.
//
// The only contract a scorer must meet is Scorer (Score). This keeps the
// pipeline swappable and testable with fakes.
package pipeline
