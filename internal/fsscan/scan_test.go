package fsscan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seekr/internal/fsscan"
	"seekr/internal/logging"
	"seekr/internal/services"
	"seekr/internal/testsupport"
	"seekr/internal/track"
)

var audioExts = []string{"mp3", "flac", "wav"}

func TestScanReadsTagsAndFallsBackToFilenames(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTaggedAudio(t, filepath.Join(root, "a", "01.mp3"), "Daft Punk", "One More Time", "Discovery")
	testsupport.WriteFile(t, filepath.Join(root, "b", "Justice - Genesis.flac"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "Bicep", "Glue.wav"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "Loose Track.mp3"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "cover.jpg"), 64)

	candidates, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{
		Root:       root,
		Extensions: audioExts,
		ReadTags:   true,
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("expected 4 audio candidates, got %d: %+v", len(candidates), candidates)
	}

	// lexical walk order: Bicep/, Loose Track.mp3, a/, b/
	want := []struct {
		artist, title, location string
	}{
		{"Bicep", "Glue", filepath.Join(root, "Bicep", "Glue.wav")},
		{"", "Loose Track", filepath.Join(root, "Loose Track.mp3")},
		{"Daft Punk", "One More Time", filepath.Join(root, "a", "01.mp3")},
		{"Justice", "Genesis", filepath.Join(root, "b", "Justice - Genesis.flac")},
	}
	for i, w := range want {
		c := candidates[i]
		if c.Artist != w.artist || c.Title != w.title || c.Location != w.location {
			t.Fatalf("candidate %d = %+v, want %+v", i, c, w)
		}
		if c.Kind != track.SourceFilesystem {
			t.Fatalf("candidate %d kind = %q", i, c.Kind)
		}
	}
	if candidates[2].Album != "Discovery" || candidates[2].Format != "mp3" {
		t.Fatalf("expected tag album and format, got %+v", candidates[2])
	}
	if candidates[0].Format != "wav" {
		t.Fatalf("expected extension format, got %q", candidates[0].Format)
	}
}

func TestScanWithoutTagsUsesFolderArtist(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteTaggedAudio(t, filepath.Join(root, "Some Folder", "Track Name.mp3"), "Tagged Artist", "Tagged Title", "")

	candidates, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{
		Root:       root,
		Extensions: []string{".MP3"},
		ReadTags:   false,
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Artist != "Some Folder" || candidates[0].Title != "Track Name" {
		t.Fatalf("expected folder/filename fallback, got %+v", candidates[0])
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	candidates, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Root: t.TempDir(), Extensions: audioExts})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if candidates == nil || len(candidates) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", candidates)
	}
}

func TestScanRejectsBadRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Root: missing, Extensions: audioExts}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Extensions: audioExts}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty root, got %v", err)
	}
	if _, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Root: t.TempDir()}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty extensions, got %v", err)
	}
}

func TestScanSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(outside, "Artist - Linked.mp3"), 64)
	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// loop back to root must not recurse forever
	if err := os.Symlink(root, filepath.Join(outside, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	candidates, err := fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Root: root, Extensions: audioExts})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected symlinks ignored by default, got %+v", candidates)
	}

	candidates, err = fsscan.Scan(context.Background(), logging.NewNop(), fsscan.Options{Root: root, Extensions: audioExts, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate through symlink, got %+v", candidates)
	}
	want := filepath.Join(root, "linked", "Artist - Linked.mp3")
	if candidates[0].Location != want || candidates[0].Title != "Linked" {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}

func TestScanHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "A - B.mp3"), 64)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fsscan.Scan(ctx, logging.NewNop(), fsscan.Options{Root: root, Extensions: audioExts}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
