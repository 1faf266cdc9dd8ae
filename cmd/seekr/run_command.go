package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seekr/internal/config"
	"seekr/internal/djlibrary"
	"seekr/internal/export"
	"seekr/internal/fsscan"
	"seekr/internal/logging"
	"seekr/internal/matcher"
	"seekr/internal/playlist"
	"seekr/internal/reconcile"
	"seekr/internal/services"
	"seekr/internal/track"
)

type runOptions struct {
	input          string
	musicDir       string
	library        string
	libraryFormat  string
	score          int
	workers        int
	writeReport    bool
	writeCSV       bool
	writeChecklist bool
	noFilesystem   bool
	noLibrary      bool
	jsonOutput     bool
	showAll        bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile a playlist against the music directory and DJ library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, opts); err != nil {
				return err
			}
			if err := requireSource(cfg); err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			res, err := executeRun(cmd.Context(), logger, cfg, opts.input)
			if err != nil {
				logging.ErrorWithContext(logger, "run failed", "run_failed",
					logging.Error(err),
					logging.String("playlist", opts.input),
					logging.String(logging.FieldErrorHint, "run `seekr check -i <playlist>` to verify inputs"),
				)
				return err
			}

			out := cmd.OutOrStdout()
			notes := out
			if opts.jsonOutput {
				if err := export.WriteReportJSON(out, res); err != nil {
					return err
				}
				notes = cmd.ErrOrStderr()
			} else {
				colorize := shouldColorize(out)
				fmt.Fprint(out, renderRunResult(res, opts.showAll || ctx.verbose(), colorize))
			}

			sel := export.Selection{
				ReportJSON: opts.writeReport,
				ReportCSV:  opts.writeCSV,
				Checklist:  opts.writeChecklist,
			}
			if !sel.Any() {
				return nil
			}
			writer := export.Writer{Dir: cfg.Paths.ReportDir, Label: playlistLabel(opts.input)}
			paths, err := writer.Write(cmd.Context(), res, sel)
			if err != nil {
				return err
			}
			printWrittenFiles(notes, paths, sel)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Playlist export to reconcile (.json or .csv)")
	flags.StringVarP(&opts.musicDir, "dir", "d", "", "Music directory to scan (overrides paths.music_dir)")
	flags.StringVar(&opts.library, "library", "", "DJ library database or XML export (overrides paths.library_path)")
	flags.StringVar(&opts.libraryFormat, "library-format", "", "DJ library format: auto, sqlite, or xml")
	flags.IntVarP(&opts.score, "score", "s", 0, "Minimum similarity score (0-100) to accept a match")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Parallel matching workers")
	flags.BoolVar(&opts.writeReport, "report", false, "Write the full JSON report to the report directory")
	flags.BoolVar(&opts.writeCSV, "csv", false, "Write the full CSV report to the report directory")
	flags.BoolVar(&opts.writeChecklist, "dllist", false, "Write the download checklist of missing tracks")
	flags.BoolVar(&opts.noFilesystem, "no-filesystem", false, "Skip the music directory scan")
	flags.BoolVar(&opts.noLibrary, "no-library", false, "Skip the DJ library")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the run result as JSON instead of tables")
	flags.BoolVarP(&opts.showAll, "all", "a", false, "Show every track, not only the missing ones")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// applyRunOverrides folds command-line flags into cfg. Only flags that were
// set explicitly replace configured values.
func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, opts runOptions) error {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		dir, err := expandFlagPath("dir", opts.musicDir)
		if err != nil {
			return err
		}
		cfg.Paths.MusicDir = dir
	}
	if flags.Changed("library") {
		lib, err := expandFlagPath("library", opts.library)
		if err != nil {
			return err
		}
		cfg.Paths.LibraryPath = lib
	}
	if flags.Changed("library-format") {
		cfg.Library.Format = strings.ToLower(strings.TrimSpace(opts.libraryFormat))
	}
	if flags.Changed("score") {
		if err := matcher.ValidateThreshold(opts.score); err != nil {
			return err
		}
		cfg.Matching.Threshold = opts.score
	}
	if flags.Changed("workers") {
		cfg.Matching.Workers = opts.workers
	}
	if opts.noFilesystem {
		cfg.Paths.MusicDir = ""
	}
	if opts.noLibrary {
		cfg.Paths.LibraryPath = ""
	}
	return cfg.Validate()
}

func requireSource(cfg *config.Config) error {
	if cfg.Paths.MusicDir == "" && cfg.Paths.LibraryPath == "" {
		return services.Wrap(services.ErrConfiguration, "cli", "sources",
			"no music directory or DJ library configured; pass -d or --library", nil)
	}
	return nil
}

// executeRun loads every input and reconciles the playlist.
func executeRun(ctx context.Context, logger *slog.Logger, cfg *config.Config, playlistPath string) (*reconcile.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := expandFlagPath("input", playlistPath)
	if err != nil {
		return nil, err
	}
	tracks, err := playlist.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("playlist loaded", "playlist", path, "tracks", len(tracks))

	in := reconcile.Input{Tracks: tracks}
	if cfg.Paths.MusicDir != "" {
		candidates, err := fsscan.Scan(ctx, logger, fsscan.Options{
			Root:           cfg.Paths.MusicDir,
			Extensions:     cfg.Scan.Extensions,
			ReadTags:       cfg.Scan.ReadTags,
			FollowSymlinks: cfg.Scan.FollowSymlinks,
		})
		if err != nil {
			return nil, err
		}
		in.Filesystem = candidates
		in.FilesystemSupplied = true
	}
	if cfg.Paths.LibraryPath != "" {
		candidates, err := djlibrary.ReadAll(ctx, cfg.Paths.LibraryPath, cfg.Library.Format)
		if err != nil {
			return nil, err
		}
		logger.Info("library loaded",
			"library", cfg.Paths.LibraryPath,
			"format", cfg.ResolvedLibraryFormat(),
			"tracks", len(candidates),
		)
		in.Library = candidates
		in.LibrarySupplied = true
	}

	return reconcile.Run(ctx, logger, in, reconcile.Options{
		Threshold: cfg.Matching.Threshold,
		Workers:   cfg.Matching.Workers,
	})
}

// playlistLabel names export files after the playlist file.
func playlistLabel(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sourceSupplied(res *reconcile.Result, kind track.SourceKind) bool {
	for _, k := range res.Sources {
		if k == kind {
			return true
		}
	}
	return false
}
