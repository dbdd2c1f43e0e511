// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dokuport/internal/render"
	"github.com/pdiddy/dokuport/internal/site"
	"github.com/pdiddy/dokuport/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview <page.txt>",
	Short: "Convert one page and render it to HTML",
	Long: `Preview converts a single DokuWiki page file and renders the resulting
Markdown to HTML on stdout, without touching the output tree. Use --markdown
to see the intermediate Markdown instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("pages-dir", defaultPagesDir, "DokuWiki data/pages directory (for namespace derivation)")
	previewCmd.Flags().String("backend", string(types.BackendBuiltin), "conversion engine: builtin or pandoc")
	previewCmd.Flags().Bool("markdown", false, "print the converted Markdown instead of HTML")
	previewCmd.Flags().String("out", "", "write the rendering to a file instead of stdout")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromFlags(cmd)

	conv, err := newConverter(cfg.Convert.Backend)
	if err != nil {
		return err
	}

	page, err := site.PageFromPath(cfg.Source.PagesDir, args[0])
	if err != nil {
		return err
	}

	src, err := os.ReadFile(page.SourcePath)
	if err != nil {
		return fmt.Errorf("reading page %s: %w", page.SourcePath, err)
	}

	md, err := conv.Convert(string(src), page.ID)
	if err != nil {
		return err
	}

	output := []byte(md)
	if plain, _ := cmd.Flags().GetBool("markdown"); !plain {
		output, err = render.ToHTML([]byte(md))
		if err != nil {
			return err
		}
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := os.WriteFile(out, output, 0o644); err != nil {
			return fmt.Errorf("writing preview to %s: %w", out, err)
		}
		return nil
	}
	_, err = os.Stdout.Write(output)
	return err
}
