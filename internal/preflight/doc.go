// Package preflight provides readiness checks for the filesystem paths and
// library files seekr depends on.
//
// The CLI "seekr check" command prints every result; "seekr run" calls
// RunAll first and refuses to start when a required check fails. Checks for
// sources the user disabled are skipped.
package preflight
