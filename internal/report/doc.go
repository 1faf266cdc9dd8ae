// Package report projects per-track match outcomes into the two output views:
// the full reconciliation report and the missing-only checklist.
//
// Both views keep playlist order. The builder performs no scoring; it only
// reads MatchResults produced by the matcher.
package report
