// Package fsscan walks a music directory and turns audio files into
// filesystem candidates.
//
// Artist and title come from embedded tags (read with dhowden/tag) when
// present. Untagged files fall back to an "Artist - Title" file stem, and
// then to the stem as title with the nearest parent folder as artist.
package fsscan
