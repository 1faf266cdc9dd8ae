package reconcile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"seekr/internal/logging"
	"seekr/internal/reconcile"
	"seekr/internal/services"
	"seekr/internal/track"
)

func playlist() []track.PlaylistTrack {
	return []track.PlaylistTrack{
		{Position: 1, Artist: "Daft Punk", Title: "One More Time"},
		{Position: 2, Artist: "Justice", Title: "Genesis"},
		{Position: 3, Artist: "Boards of Canada", Title: "Roygbiv"},
	}
}

func TestRunWithEmptyCandidatesReportsEverythingMissing(t *testing.T) {
	res, err := reconcile.Run(context.Background(), logging.NewNop(), reconcile.Input{
		Tracks:             playlist(),
		FilesystemSupplied: true,
		LibrarySupplied:    true,
	}, reconcile.Options{Threshold: 80})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Report.Rows) != 3 || len(res.Checklist.Rows) != 3 {
		t.Fatalf("expected 3 report and 3 checklist rows, got %d/%d", len(res.Report.Rows), len(res.Checklist.Rows))
	}
	for i, row := range res.Report.Rows {
		if row.Track.Position != i+1 {
			t.Fatalf("row %d out of order: %+v", i, row.Track)
		}
		for _, kind := range track.AllSourceKinds() {
			r := row.Result(kind)
			if r.Status != track.StatusNotFound || r.Best != nil || r.Score != 0 {
				t.Fatalf("row %d %s: expected bare NotFound, got %+v", i, kind, r)
			}
		}
	}
	if res.Summary.Missing != 3 || res.Summary.Total != 3 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Fatalf("expected uuid run id, got %q", res.RunID)
	}
}

func TestRunEndToEnd(t *testing.T) {
	in := reconcile.Input{
		Tracks: playlist(),
		Filesystem: []track.Candidate{
			{Artist: "Daft Punk", Title: "One More Time (Radio Edit)", Location: "/music/dp.mp3"},
			{Artist: "Justice", Title: "Genesis", Location: "/music/justice.flac"},
		},
		Library: []track.Candidate{
			{Artist: "Daft Punk", Title: "One More Time", Location: "rekordbox:1"},
		},
		FilesystemSupplied: true,
		LibrarySupplied:    true,
	}
	res, err := reconcile.Run(context.Background(), logging.NewNop(), in, reconcile.Options{Threshold: 80, Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	first := res.Report.Rows[0]
	if !first.Filesystem.Found() || first.Filesystem.Location() != "/music/dp.mp3" {
		t.Fatalf("daft punk filesystem: %+v", first.Filesystem)
	}
	if !first.Library.Found() || first.Library.Score != 100 {
		t.Fatalf("daft punk library: %+v", first.Library)
	}
	second := res.Report.Rows[1]
	if !second.Filesystem.Found() || second.Library.Found() {
		t.Fatalf("justice should be filesystem only: %+v", second)
	}
	if len(res.Checklist.Rows) != 1 || res.Checklist.Rows[0].Track.Artist != "Boards of Canada" {
		t.Fatalf("unexpected checklist: %+v", res.Checklist.Rows)
	}
	want := struct{ lib, fsOnly, missing int }{1, 1, 1}
	if res.Summary.InLibrary != want.lib || res.Summary.OnFilesystemOnly != want.fsOnly || res.Summary.Missing != want.missing {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	if res.CandidateCounts[track.SourceFilesystem] != 2 || res.CandidateCounts[track.SourceLibrary] != 1 {
		t.Fatalf("unexpected candidate counts: %v", res.CandidateCounts)
	}
	if res.Threshold != 80 {
		t.Fatalf("threshold = %d", res.Threshold)
	}
}

func TestRunEmptyPlaylist(t *testing.T) {
	res, err := reconcile.Run(context.Background(), logging.NewNop(), reconcile.Input{
		Filesystem:         []track.Candidate{{Artist: "A", Title: "B"}},
		FilesystemSupplied: true,
	}, reconcile.Options{Threshold: 50})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Report.Rows == nil || len(res.Report.Rows) != 0 {
		t.Fatalf("expected empty non-nil report rows, got %#v", res.Report.Rows)
	}
	if res.Checklist.Rows == nil || len(res.Checklist.Rows) != 0 {
		t.Fatalf("expected empty non-nil checklist rows, got %#v", res.Checklist.Rows)
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   reconcile.Input
		opts reconcile.Options
	}{
		{"threshold below range", reconcile.Input{Tracks: playlist(), FilesystemSupplied: true}, reconcile.Options{Threshold: -1}},
		{"threshold above range", reconcile.Input{Tracks: playlist(), LibrarySupplied: true}, reconcile.Options{Threshold: 101}},
		{"no sources", reconcile.Input{Tracks: playlist()}, reconcile.Options{Threshold: 80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reconcile.Run(context.Background(), logging.NewNop(), tt.in, tt.opts)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if res != nil {
				t.Fatalf("expected no partial output, got %+v", res)
			}
		})
	}
}

func TestRunSkipsMalformedInputsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	in := reconcile.Input{
		Tracks: []track.PlaylistTrack{
			{Artist: "Justice", Title: "Genesis"},
			{Artist: "  ", Title: ""},
			{Artist: "Daft Punk", Title: "Aerodynamic"},
		},
		Filesystem: []track.Candidate{
			{Location: "/music/untagged.mp3"},
			{Artist: "Justice", Title: "Genesis", Location: "/music/justice.flac"},
		},
		FilesystemSupplied: true,
	}
	res, err := reconcile.Run(context.Background(), logger, in, reconcile.Options{Threshold: 80})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Report.Rows) != 2 {
		t.Fatalf("expected 2 rows after skipping, got %d", len(res.Report.Rows))
	}
	if res.Report.Rows[1].Track.Position != 3 {
		t.Fatalf("expected original position 3 preserved, got %d", res.Report.Rows[1].Track.Position)
	}
	if len(res.SkippedTracks) != 1 || res.SkippedTracks[0].Position != 2 {
		t.Fatalf("unexpected skipped tracks: %+v", res.SkippedTracks)
	}
	if len(res.SkippedCandidates) != 1 || res.SkippedCandidates[0].Candidate.Location != "/music/untagged.mp3" {
		t.Fatalf("unexpected skipped candidates: %+v", res.SkippedCandidates)
	}
	if !res.Report.Rows[0].Filesystem.Found() {
		t.Fatalf("expected justice found: %+v", res.Report.Rows[0])
	}

	events := map[string]map[string]any{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if et, ok := record[logging.FieldEventType].(string); ok {
			events[et] = record
		}
	}
	skipped, ok := events["track_skipped"]
	if !ok {
		t.Fatalf("expected track_skipped warning, got %v", events)
	}
	if skipped["level"] != "warn" || skipped["position"] != float64(2) {
		t.Fatalf("unexpected track_skipped record: %v", skipped)
	}
	if skipped[logging.FieldRunID] != res.RunID {
		t.Fatalf("expected run id on log line, got %v", skipped[logging.FieldRunID])
	}
	if _, ok := events["candidate_skipped"]; !ok {
		t.Fatalf("expected candidate_skipped warning, got %v", events)
	}
}

func TestRunIgnoresUnsuppliedSource(t *testing.T) {
	in := reconcile.Input{
		Tracks:             playlist()[:1],
		Filesystem:         []track.Candidate{{Artist: "Daft Punk", Title: "One More Time"}},
		Library:            []track.Candidate{{Artist: "Daft Punk", Title: "One More Time"}},
		FilesystemSupplied: false,
		LibrarySupplied:    true,
	}
	res, err := reconcile.Run(context.Background(), nil, in, reconcile.Options{Threshold: 80})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	row := res.Report.Rows[0]
	if row.Filesystem.Found() || row.Filesystem.Best != nil {
		t.Fatalf("filesystem should be NotFound when not supplied: %+v", row.Filesystem)
	}
	if !row.Library.Found() {
		t.Fatalf("library should match: %+v", row.Library)
	}
	if len(res.Sources) != 1 || res.Sources[0] != track.SourceLibrary {
		t.Fatalf("unexpected sources: %v", res.Sources)
	}
	if res.Summary.InLibrary != 1 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
}

func TestRunDebugDecisionLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	in := reconcile.Input{
		Tracks:          playlist()[:1],
		Library:         []track.Candidate{{Artist: "Daft Punk", Title: "One More Time"}},
		LibrarySupplied: true,
	}
	if _, err := reconcile.Run(context.Background(), logger, in, reconcile.Options{Threshold: 80}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), `"decision_type":"match"`) || !strings.Contains(buf.String(), `"decision_result":"found"`) {
		t.Fatalf("expected match decision log, got %s", buf.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reconcile.Run(ctx, logging.NewNop(), reconcile.Input{Tracks: playlist(), FilesystemSupplied: true}, reconcile.Options{Threshold: 80})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
