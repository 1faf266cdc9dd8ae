// Package track holds the records that flow through a reconciliation run:
// playlist entries, local candidates tagged with their source kind, and the
// per-source match outcomes derived from them.
//
// All values are treated as immutable snapshots once created. Collaborators
// (playlist loader, filesystem scanner, library reader) produce them; the
// matcher and report builder only read them.
package track
