package catalog

import (
	"seekr/internal/textutil"
	"seekr/internal/track"
)

// Entry is one indexed candidate with its precomputed key.
type Entry struct {
	Position  int
	Candidate track.Candidate
	Key       textutil.Key
}

// Skipped records a candidate excluded from scoring.
type Skipped struct {
	Kind      track.SourceKind
	Position  int
	Candidate track.Candidate
	Reason    string
}

// Index is the read-only candidate arena for one reconciliation run.
type Index struct {
	entries map[track.SourceKind][]Entry
	skipped []Skipped
}

// Build indexes both candidate sequences. Candidates keep the kind of the
// sequence they were supplied in, regardless of their own Kind field.
func Build(filesystem, library []track.Candidate) *Index {
	idx := &Index{entries: make(map[track.SourceKind][]Entry, 2)}
	idx.add(track.SourceFilesystem, filesystem)
	idx.add(track.SourceLibrary, library)
	return idx
}

func (idx *Index) add(kind track.SourceKind, candidates []track.Candidate) {
	entries := make([]Entry, 0, len(candidates))
	for pos, candidate := range candidates {
		candidate.Kind = kind
		if candidate.IsMalformed() {
			idx.skipped = append(idx.skipped, Skipped{
				Kind:      kind,
				Position:  pos,
				Candidate: candidate,
				Reason:    "missing artist and title",
			})
			continue
		}
		entries = append(entries, Entry{
			Position:  pos,
			Candidate: candidate,
			Key:       textutil.Normalize(candidate.Artist, candidate.Title),
		})
	}
	idx.entries[kind] = entries
}

// Entries returns the indexed candidates of kind in input order. The slice is
// shared and must not be modified.
func (idx *Index) Entries(kind track.SourceKind) []Entry {
	if idx == nil {
		return nil
	}
	return idx.entries[kind]
}

// Len returns the number of scoreable candidates of kind.
func (idx *Index) Len(kind track.SourceKind) int {
	return len(idx.Entries(kind))
}

// Total returns the number of scoreable candidates across all kinds.
func (idx *Index) Total() int {
	if idx == nil {
		return 0
	}
	total := 0
	for _, entries := range idx.entries {
		total += len(entries)
	}
	return total
}

// Skipped returns the candidates excluded at build time.
func (idx *Index) Skipped() []Skipped {
	if idx == nil {
		return nil
	}
	out := make([]Skipped, len(idx.skipped))
	copy(out, idx.skipped)
	return out
}
