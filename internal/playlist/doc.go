// Package playlist loads playlist exports into track.PlaylistTrack values.
//
// JSON exports are arrays of objects with artist/title fields (artist may be
// a string or a list); CSV exports are header-driven and accept the column
// names produced by common playlist exporters; YAML files use the JSON field
// names. Blank entries are kept so the
// reconciliation run can report them with their original position.
package playlist
