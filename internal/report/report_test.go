package report_test

import (
	"testing"

	"seekr/internal/report"
	"seekr/internal/track"
)

func found(kind track.SourceKind, location string, score int) track.MatchResult {
	return track.MatchResult{
		Kind:   kind,
		Best:   &track.Candidate{Kind: kind, Location: location},
		Score:  score,
		Status: track.StatusFound,
	}
}

func TestBuildPreservesPlaylistOrder(t *testing.T) {
	matches := []track.TrackMatches{
		{Track: track.PlaylistTrack{Position: 0, Artist: "Zed", Title: "Last"}, Filesystem: found(track.SourceFilesystem, "/z.mp3", 100), Library: track.NotFound(track.SourceLibrary)},
		{Track: track.PlaylistTrack{Position: 1, Artist: "Abba", Title: "First"}, Filesystem: track.NotFound(track.SourceFilesystem), Library: track.NotFound(track.SourceLibrary)},
		{Track: track.PlaylistTrack{Position: 2, Artist: "Moby", Title: "Porcelain"}, Filesystem: track.NotFound(track.SourceFilesystem), Library: found(track.SourceLibrary, "rekordbox:7", 91)},
		{Track: track.PlaylistTrack{Position: 3, Artist: "Air", Title: "Sexy Boy"}, Filesystem: track.NotFound(track.SourceFilesystem), Library: track.NotFound(track.SourceLibrary)},
	}
	rep, check := report.Build(matches)

	if len(rep.Rows) != 4 {
		t.Fatalf("expected 4 report rows, got %d", len(rep.Rows))
	}
	for i, row := range rep.Rows {
		if row.Track.Position != i {
			t.Fatalf("report row %d holds position %d", i, row.Track.Position)
		}
	}
	if len(check.Rows) != 2 {
		t.Fatalf("expected 2 checklist rows, got %d", len(check.Rows))
	}
	if check.Rows[0].Track.Artist != "Abba" || check.Rows[1].Track.Artist != "Air" {
		t.Fatalf("unexpected checklist order: %+v", check.Rows)
	}
}

func TestBuildTreatsUnscoredKindAsNotFound(t *testing.T) {
	matches := []track.TrackMatches{
		{Track: track.PlaylistTrack{Title: "Only FS scored"}, Filesystem: track.NotFound(track.SourceFilesystem)},
	}
	rep, check := report.Build(matches)
	if rep.Rows[0].Library.Status != track.StatusNotFound {
		t.Fatalf("expected absent kind to read as not_found, got %q", rep.Rows[0].Library.Status)
	}
	if len(check.Rows) != 1 {
		t.Fatalf("expected track to be on the checklist, got %d rows", len(check.Rows))
	}
}

func TestBuildEmptyPlaylist(t *testing.T) {
	rep, check := report.Build(nil)
	if len(rep.Rows) != 0 || len(check.Rows) != 0 {
		t.Fatalf("expected empty views, got %d/%d", len(rep.Rows), len(check.Rows))
	}
	if rep.Rows == nil || check.Rows == nil {
		t.Fatal("expected non-nil empty slices for stable serialization")
	}
}

func TestBuildFromRequiresAlignedInputs(t *testing.T) {
	tracks := []track.PlaylistTrack{{Title: "a"}, {Title: "b"}}
	if _, _, err := report.BuildFrom(tracks, []track.TrackMatches{{}}); err == nil {
		t.Fatal("expected error for misaligned inputs")
	}
	rep, check, err := report.BuildFrom(tracks, []track.TrackMatches{{}, {}})
	if err != nil {
		t.Fatalf("BuildFrom returned error: %v", err)
	}
	if rep.Rows[1].Track.Title != "b" || len(check.Rows) != 2 {
		t.Fatalf("unexpected views: %+v %+v", rep, check)
	}
}

func TestSummarize(t *testing.T) {
	rep, _ := report.Build([]track.TrackMatches{
		{Filesystem: found(track.SourceFilesystem, "/a", 90), Library: found(track.SourceLibrary, "rekordbox:1", 90)},
		{Filesystem: found(track.SourceFilesystem, "/b", 90)},
		{},
		{Library: found(track.SourceLibrary, "rekordbox:2", 88)},
	})
	got := report.Summarize(rep)
	want := report.Summary{Total: 4, InLibrary: 2, OnFilesystemOnly: 1, Missing: 1}
	if got != want {
		t.Fatalf("Summarize() = %+v, want %+v", got, want)
	}
}
