package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"seekr/internal/export"
	"seekr/internal/logging"
	"seekr/internal/reconcile"
	"seekr/internal/services"
	"seekr/internal/track"
)

func sampleResult(t *testing.T) *reconcile.Result {
	t.Helper()
	res, err := reconcile.Run(context.Background(), logging.NewNop(), reconcile.Input{
		Tracks: []track.PlaylistTrack{
			{Artist: "Daft Punk", Title: "One More Time", Album: "Discovery", ServiceID: "sp1"},
			{Artist: "Justice", Title: "Genesis"},
			{Artist: "Boards of Canada", Title: "Roygbiv"},
			{},
		},
		Filesystem: []track.Candidate{
			{Artist: "Justice", Title: "Genesis", Location: "/music/justice.flac", Duration: 234 * time.Second},
		},
		Library: []track.Candidate{
			{Artist: "Daft Punk", Title: "One More Time", Location: "rekordbox:1"},
		},
		FilesystemSupplied: true,
		LibrarySupplied:    true,
	}, reconcile.Options{Threshold: 80})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestWriteReportCSV(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := export.WriteReportCSV(&buf, res.Report); err != nil {
		t.Fatalf("WriteReportCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "position,artist,title,album,service_id,filesystem_status,filesystem_score,filesystem_location,library_status,library_score,library_location" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	first := records[1]
	if first[0] != "1" || first[3] != "Discovery" || first[4] != "sp1" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if first[8] != "found" || first[9] != "100" || first[10] != "rekordbox:1" {
		t.Fatalf("unexpected library columns: %v", first)
	}
	second := records[2]
	if second[5] != "found" || second[7] != "/music/justice.flac" || second[8] != "not_found" {
		t.Fatalf("unexpected second row: %v", second)
	}
}

func TestWriteChecklistCSV(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := export.WriteChecklistCSV(&buf, res.Checklist); err != nil {
		t.Fatalf("WriteChecklistCSV: %v", err)
	}
	want := "fetched,artist,title\nfalse,Boards of Canada,Roygbiv\n"
	if buf.String() != want {
		t.Fatalf("checklist = %q, want %q", buf.String(), want)
	}
}

func TestWriteReportJSON(t *testing.T) {
	res := sampleResult(t)
	var buf bytes.Buffer
	if err := export.WriteReportJSON(&buf, res); err != nil {
		t.Fatalf("WriteReportJSON: %v", err)
	}

	var doc struct {
		RunID     string         `json:"run_id"`
		Threshold int            `json:"threshold"`
		Sources   []string       `json:"sources"`
		Summary   map[string]int `json:"summary"`
		Tracks    []struct {
			Position   int  `json:"position"`
			Missing    bool `json:"missing"`
			Filesystem struct {
				Status    string `json:"status"`
				Candidate *struct {
					Location        string  `json:"location"`
					DurationSeconds float64 `json:"duration_seconds"`
				} `json:"candidate"`
			} `json:"filesystem"`
		} `json:"tracks"`
		Skipped []struct {
			Position int `json:"position"`
		} `json:"skipped_tracks"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.RunID != res.RunID || doc.Threshold != 80 {
		t.Fatalf("unexpected header fields: %+v", doc)
	}
	if len(doc.Sources) != 2 || doc.Summary["missing"] != 1 || doc.Summary["total"] != 3 {
		t.Fatalf("unexpected sources/summary: %v %v", doc.Sources, doc.Summary)
	}
	if len(doc.Tracks) != 3 || !doc.Tracks[2].Missing {
		t.Fatalf("unexpected tracks: %+v", doc.Tracks)
	}
	fs := doc.Tracks[1].Filesystem
	if fs.Status != "found" || fs.Candidate == nil || fs.Candidate.Location != "/music/justice.flac" || fs.Candidate.DurationSeconds != 234 {
		t.Fatalf("unexpected filesystem result: %+v", fs)
	}
	if len(doc.Skipped) != 1 || doc.Skipped[0].Position != 4 {
		t.Fatalf("unexpected skipped tracks: %+v", doc.Skipped)
	}
}

func TestWriterWritesTimestampedFiles(t *testing.T) {
	res := sampleResult(t)
	dir := filepath.Join(t.TempDir(), "reports")
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	w := export.Writer{Dir: dir, Now: func() time.Time { return fixed }}

	paths, err := w.Write(context.Background(), res, export.Selection{ReportJSON: true, ReportCSV: true, Checklist: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if paths.ReportJSON != filepath.Join(dir, "20260304_050607_report.json") {
		t.Fatalf("unexpected json path: %q", paths.ReportJSON)
	}
	if paths.ReportCSV != filepath.Join(dir, "20260304_050607_report.csv") {
		t.Fatalf("unexpected csv path: %q", paths.ReportCSV)
	}
	if paths.Checklist != filepath.Join(dir, "20260304_050607_download-list.csv") {
		t.Fatalf("unexpected checklist path: %q", paths.Checklist)
	}
	for _, p := range []string{paths.ReportJSON, paths.ReportCSV, paths.Checklist} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty %s: %v", p, err)
		}
	}

	again, err := w.Write(context.Background(), res, export.Selection{ReportJSON: true})
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if again.ReportJSON != filepath.Join(dir, "20260304_050607-2_report.json") {
		t.Fatalf("expected de-duplicated name, got %q", again.ReportJSON)
	}
}

func TestWriterAddsSanitizedLabel(t *testing.T) {
	res := sampleResult(t)
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	w := export.Writer{Dir: dir, Label: "Friday Night Mix!", Now: func() time.Time { return fixed }}

	paths, err := w.Write(context.Background(), res, export.Selection{ReportCSV: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if paths.ReportCSV != filepath.Join(dir, "20260304_050607_friday_night_mix_report.csv") {
		t.Fatalf("unexpected csv path: %q", paths.ReportCSV)
	}
}

func TestWriterSkipsEmptyChecklist(t *testing.T) {
	res, err := reconcile.Run(context.Background(), logging.NewNop(), reconcile.Input{
		Tracks:          []track.PlaylistTrack{{Artist: "A", Title: "B"}},
		Library:         []track.Candidate{{Artist: "A", Title: "B"}},
		LibrarySupplied: true,
	}, reconcile.Options{Threshold: 80})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	paths, err := export.Writer{Dir: t.TempDir()}.Write(context.Background(), res, export.Selection{Checklist: true})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if paths.Checklist != "" {
		t.Fatalf("expected no checklist file, got %q", paths.Checklist)
	}
}

func TestWriterFailsWhileLocked(t *testing.T) {
	res := sampleResult(t)
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, ".seekr.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("acquire test lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	_, err = export.Writer{Dir: dir}.Write(ctx, res, export.Selection{ReportJSON: true})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient lock error, got %v", err)
	}
}
