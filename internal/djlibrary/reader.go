package djlibrary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seekr/internal/config"
	"seekr/internal/services"
	"seekr/internal/track"
)

// Reader lists the tracks of one DJ library.
type Reader interface {
	Tracks(ctx context.Context) ([]track.Candidate, error)
	Close() error
}

// Open returns a Reader for the library at path. format is one of
// config.LibraryFormatAuto, config.LibraryFormatSQLite, or
// config.LibraryFormatXML.
func Open(path, format string) (Reader, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "library", "open", "library path not set", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "library", "open", path, err)
		}
		return nil, fmt.Errorf("stat library: %w", err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "library", "open", path+" is a directory", nil)
	}

	switch resolved := config.ResolveLibraryFormat(format, path); resolved {
	case config.LibraryFormatSQLite:
		return openSQLite(path)
	case config.LibraryFormatXML:
		return &xmlReader{path: path}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "library", "open",
			fmt.Sprintf("unsupported library format %q", resolved), nil)
	}
}

// ReadAll opens the library, lists its tracks, and closes it.
func ReadAll(ctx context.Context, path, format string) ([]track.Candidate, error) {
	reader, err := Open(path, format)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return reader.Tracks(ctx)
}

// formatFromPath returns the lower-case extension of a file path.
func formatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(path)), "."))
}

// formatFromKind maps a Rekordbox "Kind" label such as "MP3 File" to "mp3".
func formatFromKind(kind string) string {
	if fields := strings.Fields(strings.ToLower(kind)); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
