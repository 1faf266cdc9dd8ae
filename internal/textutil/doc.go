// Package textutil provides the text processing behind track reconciliation:
// normalization of free-text artist/title pairs into comparable token sets,
// token-set similarity scoring, and filename token sanitizing.
//
// Normalization case-folds, strips diacritics, drops parenthesized and
// bracketed annotations plus featuring-artist fragments, and reduces the
// remainder to a sorted set of alphanumeric tokens. Scores are integers in
// [0,100]; only identical token sets score 100 and empty sets always score 0.
package textutil
