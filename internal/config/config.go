package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"seekr/internal/fileutil"
	"seekr/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Library formats understood by the DJ library reader.
const (
	LibraryFormatAuto   = "auto"
	LibraryFormatSQLite = "sqlite"
	LibraryFormatXML    = "xml"
)

// Paths contains the locations of the local collections and outputs.
type Paths struct {
	MusicDir    string `toml:"music_dir"`
	LibraryPath string `toml:"library_path"`
	ReportDir   string `toml:"report_dir"`
	LogDir      string `toml:"log_dir"`
}

// Matching contains the reconciliation scoring knobs.
type Matching struct {
	// Threshold is the minimum similarity (0-100, inclusive) to accept a match.
	Threshold int `toml:"threshold"`
	// Workers is the number of goroutines scoring playlist tracks. 0 or 1 is sequential.
	Workers int `toml:"workers"`
}

// Library contains configuration for the DJ library reader.
type Library struct {
	Format string `toml:"format"`
}

// Scan contains configuration for the filesystem scanner.
type Scan struct {
	Extensions     []string `toml:"extensions"`
	ReadTags       bool     `toml:"read_tags"`
	FollowSymlinks bool     `toml:"follow_symlinks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for seekr.
//
// Configuration sections by subsystem:
//   - Paths: music directory, DJ library database, report and log directories
//   - Matching: acceptance threshold and scoring parallelism
//   - Library: DJ library file format
//   - Scan: audio extensions and tag reading for the filesystem scanner
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Library  Library  `toml:"library"`
	Scan     Scan     `toml:"scan"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("%w: parse config: %w", services.ErrConfiguration, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfig)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the report and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ResolvedLibraryFormat returns the library format, inferring it from the
// library path extension when set to auto.
func (c *Config) ResolvedLibraryFormat() string {
	return ResolveLibraryFormat(c.Library.Format, c.Paths.LibraryPath)
}

// ResolveLibraryFormat infers "xml" for .xml paths and "sqlite" otherwise when
// format is auto or empty.
func ResolveLibraryFormat(format, path string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != LibraryFormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return LibraryFormatXML
	}
	return LibraryFormatSQLite
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
