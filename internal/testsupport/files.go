package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"seekr/internal/track"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteTaggedAudio writes a payload followed by an ID3v1 trailer carrying the
// given artist, title, and album. Fields longer than 30 bytes are truncated.
func WriteTaggedAudio(t testing.TB, path, artist, title, album string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	payload := make([]byte, 256, 256+128)
	for i := range payload {
		payload[i] = 0x42
	}
	trailer := make([]byte, 128)
	copy(trailer[0:3], "TAG")
	copy(trailer[3:33], title)
	copy(trailer[33:63], artist)
	copy(trailer[63:93], album)
	copy(trailer[93:97], "2001")
	trailer[127] = 0xFF
	if err := os.WriteFile(path, append(payload, trailer...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePlaylistJSON writes tracks as a JSON playlist export.
func WritePlaylistJSON(t testing.TB, path string, tracks []track.PlaylistTrack) {
	t.Helper()

	type entry struct {
		Artist string `json:"artist"`
		Title  string `json:"title"`
		Album  string `json:"album,omitempty"`
		ID     string `json:"id,omitempty"`
	}
	entries := make([]entry, 0, len(tracks))
	for _, tr := range tracks {
		entries = append(entries, entry{Artist: tr.Artist, Title: tr.Title, Album: tr.Album, ID: tr.ServiceID})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("marshal playlist: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
