package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"seekr/internal/config"
	"seekr/internal/testsupport"
	"seekr/internal/track"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	playlist   string
	baseDir    string
}

// setupCLITestEnv builds a config with one library track, one tagged audio
// file, and a three-track playlist: one in the library, one only on disk,
// and one missing everywhere.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SEEKR_MUSIC_DIR", "")
	t.Setenv("SEEKR_LIBRARY_PATH", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithLibrary(testsupport.LibraryTrack{
		ID:         "101",
		Artist:     "Daft Punk",
		Title:      "One More Time",
		Album:      "Discovery",
		FolderPath: "/Music/Daft Punk/One More Time.mp3",
		Length:     320,
	})}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	testsupport.WriteTaggedAudio(t, filepath.Join(cfg.Paths.MusicDir, "Moby", "porcelain.mp3"), "Moby", "Porcelain", "Play")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	playlist := filepath.Join(base, "playlist.json")
	testsupport.WritePlaylistJSON(t, playlist, []track.PlaylistTrack{
		{Artist: "Daft Punk", Title: "One More Time", ServiceID: "spotify:track:0DiWol3AO6WpXZgp0goxAV"},
		{Artist: "Moby", Title: "Porcelain"},
		{Artist: "Boards of Canada", Title: "Roygbiv"},
	})

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		playlist:   playlist,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
