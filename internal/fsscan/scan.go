package fsscan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"seekr/internal/logging"
	"seekr/internal/services"
	"seekr/internal/track"
)

// Options controls a scan.
type Options struct {
	Root           string
	Extensions     []string
	ReadTags       bool
	FollowSymlinks bool
}

type scanner struct {
	opts    Options
	exts    map[string]struct{}
	logger  *slog.Logger
	visited map[string]struct{}
	out     []track.Candidate
}

// Scan walks opts.Root in lexical order and returns one candidate per audio
// file. Files that cannot be opened are logged and skipped.
func Scan(ctx context.Context, logger *slog.Logger, opts Options) ([]track.Candidate, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		return nil, services.Wrap(services.ErrConfiguration, "scan", "root", "music directory not set", nil)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve music directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "scan", "root", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "scan", "root", root+" is not a directory", nil)
	}
	if len(opts.Extensions) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "scan", "extensions", "no audio extensions configured", nil)
	}
	opts.Root = root

	s := &scanner{
		opts:    opts,
		exts:    make(map[string]struct{}, len(opts.Extensions)),
		logger:  logging.NewComponentLogger(logger, "fsscan"),
		visited: map[string]struct{}{},
		out:     []track.Candidate{},
	}
	for _, ext := range opts.Extensions {
		s.exts[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))] = struct{}{}
	}
	walkRoot := root
	if real, err := filepath.EvalSymlinks(root); err == nil {
		s.visited[real] = struct{}{}
		walkRoot = real
	}

	if err := s.walk(ctx, walkRoot, root); err != nil {
		return nil, err
	}
	s.logger.Debug("scan complete",
		logging.String("root", root),
		logging.Int("files_scanned", len(s.out)),
	)
	return s.out, nil
}

// walk scans dir, reporting paths as if dir were located at display.
func (s *scanner) walk(ctx context.Context, dir, display string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		shown := display
		if rel, relErr := filepath.Rel(dir, path); relErr == nil && rel != "." {
			shown = filepath.Join(display, rel)
		}
		if err != nil {
			if path == dir {
				return err
			}
			s.warnUnreadable(shown, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return s.followLink(ctx, path, shown)
		}
		if d.IsDir() || !s.matchesExtension(path) {
			return nil
		}
		s.addFile(path, shown)
		return nil
	})
}

func (s *scanner) followLink(ctx context.Context, path, shown string) error {
	if !s.opts.FollowSymlinks {
		return nil
	}
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		s.warnUnreadable(shown, err)
		return nil
	}
	info, err := os.Stat(real)
	if err != nil {
		s.warnUnreadable(shown, err)
		return nil
	}
	if !info.IsDir() {
		if s.matchesExtension(path) {
			s.addFile(real, shown)
		}
		return nil
	}
	if _, seen := s.visited[real]; seen {
		return nil
	}
	s.visited[real] = struct{}{}
	return s.walk(ctx, real, shown)
}

func (s *scanner) matchesExtension(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := s.exts[ext]
	return ok
}

func (s *scanner) addFile(path, shown string) {
	candidate, err := s.describe(path, shown)
	if err != nil {
		s.warnUnreadable(shown, err)
		return
	}
	s.out = append(s.out, candidate)
}

func (s *scanner) describe(path, shown string) (track.Candidate, error) {
	candidate := track.Candidate{
		Kind:     track.SourceFilesystem,
		Location: shown,
		FilePath: shown,
		Format:   strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
	}

	file, err := os.Open(path)
	if err != nil {
		return track.Candidate{}, err
	}
	defer file.Close()

	if s.opts.ReadTags {
		meta, err := tag.ReadFrom(file)
		switch {
		case err == nil && meta != nil:
			candidate.Artist = cleanTag(meta.Artist())
			if candidate.Artist == "" {
				candidate.Artist = cleanTag(meta.AlbumArtist())
			}
			candidate.Title = cleanTag(meta.Title())
			candidate.Album = cleanTag(meta.Album())
			if ft := strings.ToLower(string(meta.FileType())); ft != "" {
				candidate.Format = ft
			}
		case errors.Is(err, tag.ErrNoTagsFound):
		default:
			s.logger.Debug("tag read failed; using filename",
				logging.String("file_path", shown),
				logging.Error(err),
			)
		}
	}

	if candidate.Title == "" {
		artist, title := fromFilename(s.opts.Root, shown)
		candidate.Title = title
		if candidate.Artist == "" {
			candidate.Artist = artist
		}
	}
	return candidate, nil
}

// fromFilename derives artist and title from "Artist - Title.ext", falling
// back to the stem as title and the nearest folder below root as artist.
func fromFilename(root, path string) (string, string) {
	stem := strings.TrimSpace(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if artist, title, ok := strings.Cut(stem, " - "); ok {
		artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
		if artist != "" && title != "" {
			return artist, title
		}
	}
	parent := filepath.Dir(path)
	if rel, err := filepath.Rel(root, parent); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", stem
	}
	return filepath.Base(parent), stem
}

func cleanTag(value string) string {
	return strings.TrimSpace(strings.Trim(value, "\x00"))
}

func (s *scanner) warnUnreadable(path string, err error) {
	logging.WarnWithContext(s.logger, "audio file skipped", "file_unreadable",
		logging.String("file_path", path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check file permissions"),
		logging.String(logging.FieldImpact, "file not considered as a filesystem candidate"),
	)
}
