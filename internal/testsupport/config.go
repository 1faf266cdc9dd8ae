package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"seekr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The music directory exists but is empty; the library path is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MusicDir = filepath.Join(base, "music")
	cfgVal.Paths.LibraryPath = filepath.Join(base, "library", "master.db")
	cfgVal.Paths.ReportDir = filepath.Join(base, "reports")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Paths.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithThreshold sets the matching threshold on the test config.
func WithThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Threshold = threshold
	}
}

// WithWorkers sets the matching worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Workers = workers
	}
}

// WithLibrary writes a Rekordbox database containing tracks at the configured
// library path.
func WithLibrary(tracks ...LibraryTrack) ConfigOption {
	return func(b *configBuilder) {
		WriteRekordboxDB(b.t, b.cfg.Paths.LibraryPath, tracks)
	}
}

// WithoutLibrary clears the library path.
func WithoutLibrary() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LibraryPath = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ReportDir)
}
