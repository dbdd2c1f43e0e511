// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dokuport/internal/doku"
	"github.com/pdiddy/dokuport/internal/manifest"
	"github.com/pdiddy/dokuport/internal/media"
	"github.com/pdiddy/dokuport/internal/pandoc"
	"github.com/pdiddy/dokuport/internal/site"
	"github.com/pdiddy/dokuport/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pages...]",
	Short: "Convert the DokuWiki pages tree to Markdown",
	Long: `Convert walks the pages directory, transforms each *.txt page to Markdown,
and writes it under the output directory at a path derived from its
namespace: foo:bar:baz becomes foo/bar/baz.md. With page file arguments only
those pages are converted.

Existing output files are skipped unless --force is given. When --media-dir
is set the media tree is copied under <output>/_media/ after the pages.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("pages-dir", defaultPagesDir, "DokuWiki data/pages directory")
	convertCmd.Flags().String("output-dir", defaultOutputDir, "destination root for Markdown files")
	convertCmd.Flags().String("media-dir", "", "DokuWiki data/media directory to copy")
	convertCmd.Flags().String("backend", string(types.BackendBuiltin), "conversion engine: builtin or pandoc")
	convertCmd.Flags().Bool("force", false, "overwrite existing files in the output tree")
	convertCmd.Flags().Bool("skip-unchanged", false, "skip pages unchanged since the last recorded run")
	convertCmd.Flags().String("manifest", "", "manifest database path (default: <output-dir>/"+manifest.DefaultFile+")")
	convertCmd.Flags().Bool("no-manifest", false, "run without recording to the manifest")
	convertCmd.Flags().Bool("verbose", false, "show per-page detail")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromFlags(cmd)

	conv, err := newConverter(cfg.Convert.Backend)
	if err != nil {
		return err
	}

	var rec site.Recorder
	if noManifest, _ := cmd.Flags().GetBool("no-manifest"); !noManifest {
		store, err := manifest.Open(manifest.PathFor(cfg))
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	var result site.BatchResult
	if len(args) > 0 {
		pages := make([]types.Page, 0, len(args))
		for _, arg := range args {
			page, err := site.PageFromPath(cfg.Source.PagesDir, arg)
			if err != nil {
				return err
			}
			pages = append(pages, page)
		}
		result = site.ConvertBatch(conv, pages, cfg, rec, os.Stdout)
	} else {
		result, err = site.ConvertSite(conv, cfg, rec, os.Stdout)
		if err != nil {
			return err
		}
	}

	if cfg.Source.MediaDir != "" {
		mediaResult, err := media.CopyTree(cfg.Source.MediaDir, cfg.Output.Dir, cfg.Output.Force, cfg.Verbose, os.Stdout)
		if err != nil {
			return err
		}
		if mediaResult.HasFailures() {
			return fmt.Errorf("%d media file(s) failed to copy", mediaResult.Failed)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed conversion", result.Failed)
	}
	return nil
}

// newConverter builds the conversion engine for the selected backend.
func newConverter(backend types.ConversionBackend) (doku.Converter, error) {
	switch backend {
	case types.BackendBuiltin, "":
		return doku.NewBuiltin(), nil
	case types.BackendPandoc:
		return pandoc.NewEngine()
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (use builtin or pandoc)", backend)
	}
}
