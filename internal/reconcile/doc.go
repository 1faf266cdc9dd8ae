// Package reconcile runs one playlist reconciliation: it validates the run
// options, drops malformed inputs, indexes the candidate sources, matches
// every playlist track, and assembles the report, checklist, and summary.
//
// A run is a single pass over in-memory inputs and keeps no state between
// invocations. Collaborators (playlist loading, filesystem scanning, DJ
// library reading, export) live in their own packages; this package only
// sees already-parsed tracks and candidates.
package reconcile
