package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seekr/internal/preflight"
	"seekr/internal/services"
)

type checkReport struct {
	Passed bool               `json:"passed"`
	Checks []preflight.Result `json:"checks"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the playlist, music directory, library, and report directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cmd, cfg, opts); err != nil {
				return err
			}

			playlistPath := ""
			if opts.input != "" {
				if playlistPath, err = expandFlagPath("input", opts.input); err != nil {
					return err
				}
			}
			results := preflight.RunAll(cfg, playlistPath)
			failed := preflight.Failures(results)

			if opts.jsonOutput {
				if err := writeJSON(cmd, checkReport{Passed: len(failed) == 0, Checks: results}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Preflight", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			if len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "preflight", "check",
					fmt.Sprintf("%d of %d checks failed", len(failed), len(results)), nil)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Playlist export to check")
	flags.StringVarP(&opts.musicDir, "dir", "d", "", "Music directory to check")
	flags.StringVar(&opts.library, "library", "", "DJ library to check")
	flags.StringVar(&opts.libraryFormat, "library-format", "", "DJ library format: auto, sqlite, or xml")
	flags.BoolVar(&opts.noFilesystem, "no-filesystem", false, "Skip the music directory")
	flags.BoolVar(&opts.noLibrary, "no-library", false, "Skip the DJ library")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print results as JSON")

	return cmd
}
