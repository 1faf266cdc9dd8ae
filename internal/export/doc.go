// Package export renders reconciliation results to files: a JSON report, a
// CSV report, and a CSV download checklist of missing tracks.
//
// The Write* functions stream to any io.Writer. Writer places timestamped
// files in a report directory, writing each atomically while holding an
// advisory lock so concurrent runs do not interleave output.
package export
