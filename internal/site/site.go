// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package site drives the page conversion: it enumerates the DokuWiki pages
// tree, derives each page's output path from its namespace, runs the
// conversion engine, and writes Markdown files under the output root.
package site

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dokuport/internal/doku"
	"github.com/pdiddy/dokuport/internal/namespace"
	"github.com/pdiddy/dokuport/pkg/types"
)

// pageExt is the extension DokuWiki uses for page source files.
const pageExt = ".txt"

// Recorder persists per-page conversion outcomes. The manifest store
// implements it; a nil Recorder disables tracking.
type Recorder interface {
	// Unchanged reports whether the page was already converted from source
	// content with the given checksum.
	Unchanged(id, checksum string) (bool, error)

	// Record stores the outcome for a page.
	Record(page types.Page, checksum string, status types.ConversionStatus) error
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Unchanged int
	Failed    int
}

// Total returns the total number of pages processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Unchanged + r.Failed
}

// HasFailures reports whether any pages failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// WalkPages enumerates *.txt files under pagesDir and builds Page records
// with namespace-derived identifiers and output paths.
func WalkPages(pagesDir string) ([]types.Page, error) {
	var pages []types.Page
	err := filepath.WalkDir(pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != pageExt {
			return nil
		}
		page, err := PageFromPath(pagesDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking pages directory %s: %w", pagesDir, err)
	}
	return pages, nil
}

// PageFromPath builds the Page record for one source file under pagesDir.
// Files outside pagesDir are rejected: their namespace would carry ".."
// segments and the output would land outside the output root.
func PageFromPath(pagesDir, path string) (types.Page, error) {
	rel, err := filepath.Rel(pagesDir, path)
	if err != nil {
		return types.Page{}, fmt.Errorf("relativizing %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return types.Page{}, fmt.Errorf("page %s is outside the pages directory %s", path, pagesDir)
	}
	id := namespace.FromPath(strings.TrimSuffix(rel, pageExt))
	return types.Page{
		ID:         id,
		SourcePath: path,
		RelPath:    namespace.PageFile(id),
	}, nil
}

// ConvertPage converts a single page and writes the result. Outcomes are
// reported on w with one line per page; errors are reported there too and
// never abort the batch.
func ConvertPage(conv doku.Converter, page types.Page, cfg types.SiteConfig, rec Recorder, w io.Writer) types.ConversionStatus {
	outPath := filepath.Join(cfg.Output.Dir, filepath.FromSlash(page.RelPath))

	src, err := os.ReadFile(page.SourcePath)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", page.ID, err)
		return types.StatusFailed
	}
	sum := checksum(src)

	if cfg.Convert.SkipUnchanged && rec != nil {
		same, err := rec.Unchanged(page.ID, sum)
		if err != nil {
			fmt.Fprintf(w, "manifest lookup for %s: %v\n", page.ID, err)
		} else if _, statErr := os.Stat(outPath); same && statErr == nil {
			// A manifest hit only counts when the output file is still
			// there; a deleted file gets regenerated.
			if cfg.Verbose {
				fmt.Fprintf(w, "unchanged: %s\n", page.ID)
			}
			return types.StatusUnchanged
		}
	}

	if _, err := os.Stat(outPath); err == nil && !cfg.Output.Force {
		fmt.Fprintf(w, "skipped:   %s (already exists)\n", page.ID)
		record(rec, page, sum, types.StatusSkipped, w)
		return types.StatusSkipped
	}

	md, err := conv.Convert(string(src), page.ID)
	if err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", page.ID, err)
		record(rec, page, sum, types.StatusFailed, w)
		return types.StatusFailed
	}

	content := addFrontmatter(page, md)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", page.ID, err)
		record(rec, page, sum, types.StatusFailed, w)
		return types.StatusFailed
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", page.ID, err)
		record(rec, page, sum, types.StatusFailed, w)
		return types.StatusFailed
	}

	if cfg.Verbose {
		fmt.Fprintf(w, "converted: %s -> %s\n", page.ID, page.RelPath)
	} else {
		fmt.Fprintf(w, "converted: %s\n", page.ID)
	}
	record(rec, page, sum, types.StatusConverted, w)
	return types.StatusConverted
}

// ConvertBatch processes the given pages through the converter, printing
// per-page status to w and returning a summary.
func ConvertBatch(conv doku.Converter, pages []types.Page, cfg types.SiteConfig, rec Recorder, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pages {
		switch ConvertPage(conv, p, cfg, rec, w) {
		case types.StatusConverted:
			result.Converted++
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusUnchanged:
			result.Unchanged++
		case types.StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d unchanged, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Unchanged, result.Failed, result.Total())
	return result
}

// ConvertSite converts the whole pages tree.
func ConvertSite(conv doku.Converter, cfg types.SiteConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	pages, err := WalkPages(cfg.Source.PagesDir)
	if err != nil {
		return BatchResult{}, err
	}
	return ConvertBatch(conv, pages, cfg, rec, w), nil
}

// record stores the page outcome, reporting manifest errors without
// affecting the conversion status.
func record(rec Recorder, page types.Page, sum string, status types.ConversionStatus, w io.Writer) {
	if rec == nil {
		return
	}
	if err := rec.Record(page, sum, status); err != nil {
		fmt.Fprintf(w, "manifest update for %s: %v\n", page.ID, err)
	}
}

// checksum returns the hex SHA-256 of the page source.
func checksum(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// pageMeta is the YAML frontmatter prepended to each converted page.
type pageMeta struct {
	Title       string `yaml:"title"`
	Source      string `yaml:"source"`
	ConvertedAt string `yaml:"converted_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown. The
// title comes from the first heading, falling back to the last namespace
// segment.
func addFrontmatter(page types.Page, body string) string {
	meta := pageMeta{
		Title:       pageTitle(page, body),
		Source:      page.ID,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		// Marshalling a flat string struct cannot fail; keep the page
		// usable regardless.
		return body
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String()
}

// pageTitle extracts the first Markdown heading, or falls back to the last
// segment of the page identifier.
func pageTitle(page types.Page, body string) string {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	parts := strings.Split(page.ID, namespace.Sep)
	return parts[len(parts)-1]
}
