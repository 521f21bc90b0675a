// Package writers owns the final output destination.
//
// Design:
//   - A file target is written to a sibling temp file and renamed into place
//     only on Commit, so a failed run never leaves a partial output file.
//   - "-" streams to stdout; a closed pipe downstream is not an error.
package writers
