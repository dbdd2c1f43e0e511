// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dokuport/internal/media"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Copy the DokuWiki media tree into the output folder",
	Long: `Media copies every file under the media directory to <output>/_media/,
preserving the namespace layout and file modification times. Existing files
are skipped unless --force is given.`,
	RunE: runMedia,
}

func init() {
	mediaCmd.Flags().String("media-dir", "", "DokuWiki data/media directory")
	mediaCmd.Flags().String("output-dir", defaultOutputDir, "destination root for the import folder")
	mediaCmd.Flags().Bool("force", false, "overwrite existing files in the output tree")
	mediaCmd.Flags().Bool("verbose", false, "show per-file detail")

	rootCmd.AddCommand(mediaCmd)
}

func runMedia(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromFlags(cmd)
	if cfg.Source.MediaDir == "" {
		return fmt.Errorf("provide --media-dir (or source.media_dir in the config file)")
	}

	result, err := media.CopyTree(cfg.Source.MediaDir, cfg.Output.Dir, cfg.Output.Force, cfg.Verbose, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d media file(s) failed to copy", result.Failed)
	}
	return nil
}
