// Package catalog builds the candidate index scored by the matcher.
//
// The index wraps the filesystem and library candidate sequences without any
// de-duplication, keeps their input order, and precomputes each candidate's
// normalized key once so the tracks × candidates scoring loop never
// re-normalizes. Malformed candidates (no artist and no title) are excluded
// and surfaced through Skipped for the caller to log.
package catalog
