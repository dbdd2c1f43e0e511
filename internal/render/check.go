// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CheckResult summarizes a check run over the generated output tree.
type CheckResult struct {
	Pages       int
	BrokenLinks int
	Failed      int
}

// HasProblems reports whether any page failed to render or contains a
// broken local link.
func (r CheckResult) HasProblems() bool {
	return r.BrokenLinks > 0 || r.Failed > 0
}

// CheckTree renders every .md file under outputDir and verifies that local
// link targets exist. Problems are reported on w, one line each; the walk
// continues past them.
func CheckTree(outputDir string, w io.Writer) (CheckResult, error) {
	var result CheckResult

	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		result.Pages++

		rel, _ := filepath.Rel(outputDir, path)

		md, err := os.ReadFile(path)
		if err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
			return nil
		}
		if _, err := ToHTML(md); err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
			return nil
		}

		links, err := LocalLinks(md)
		if err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
			return nil
		}
		for _, dest := range links {
			if !resolves(outputDir, path, dest) {
				result.BrokenLinks++
				fmt.Fprintf(w, "broken:    %s -> %s\n", rel, dest)
			}
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walking output directory %s: %w", outputDir, err)
	}

	fmt.Fprintf(w, "Check: %d pages, %d broken links, %d failures\n",
		result.Pages, result.BrokenLinks, result.Failed)
	return result, nil
}

// resolves reports whether a local link target exists. Targets are tried
// against the output root first (the converter writes root-relative paths),
// then against the linking page's own directory.
func resolves(outputDir, page, dest string) bool {
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return true
	}
	dest = filepath.FromSlash(strings.TrimPrefix(dest, "/"))

	if _, err := os.Stat(filepath.Join(outputDir, dest)); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(page), dest)); err == nil {
		return true
	}
	return false
}
