// Package matcher selects, per playlist track and source kind, the best
// scoring local candidate and applies the acceptance threshold.
//
// Scoring uses textutil.TokenSetRatio over normalized keys. Ties on score are
// broken by the candidate whose raw title length is closest to the playlist
// title, then by index order, so identical inputs always produce identical
// results. The threshold is inclusive and must be supplied explicitly; there is
// no implicit default.
//
// MatchAll can fan tracks out over several goroutines. Every track is scored
// independently against the read-only index and written to its own slot, so
// parallel and sequential runs return the same slice.
package matcher
