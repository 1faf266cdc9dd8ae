// Package main hosts the seekr CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, applies flag overrides, and
// drives one reconciliation run per invocation: the playlist loader, the
// filesystem scanner, and the DJ library reader feed the reconcile package,
// whose result is rendered as terminal tables or JSON and optionally written
// to the report directory.
//
// Keep this package lean: new behavior belongs in the internal packages first
// and is surfaced here through commands or flags.
package main
