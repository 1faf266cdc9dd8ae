// Package djlibrary reads DJ library collections into library candidates.
//
// Two encodings are supported: an unencrypted copy of a Rekordbox 6
// master.db (opened read-only through modernc.org/sqlite) and a Rekordbox
// XML collection export. Open picks the reader from the configured format,
// inferring it from the file extension when set to auto.
package djlibrary
