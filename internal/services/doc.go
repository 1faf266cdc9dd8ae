// Package services defines shared utilities consumed by the reconciliation run
// and the collaborators around it.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent CLI outcomes (configuration vs runtime failure).
//
// Use these helpers when wiring new collaborators so error handling and
// observability stay uniform across commands.
package services
