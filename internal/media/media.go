// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media copies the DokuWiki media tree under the output root's
// _media directory, preserving relative layout and file modification times.
package media

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/dokuport/internal/namespace"
)

// CopyResult holds the outcome of a media copy run.
type CopyResult struct {
	Copied  int
	Skipped int
	Failed  int
}

// Total returns the total number of media files processed.
func (r CopyResult) Total() int {
	return r.Copied + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed to copy.
func (r CopyResult) HasFailures() bool {
	return r.Failed > 0
}

// CopyTree copies every file under mediaDir to <outputDir>/_media/<relative
// path>. Existing destinations are skipped unless force is set. Per-file
// failures are reported on w and the walk continues.
func CopyTree(mediaDir, outputDir string, force bool, verbose bool, w io.Writer) (CopyResult, error) {
	var result CopyResult
	destRoot := filepath.Join(outputDir, namespace.MediaRoot)

	err := filepath.WalkDir(mediaDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(mediaDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(destRoot, rel)

		if _, err := os.Stat(dest); err == nil && !force {
			result.Skipped++
			if verbose {
				fmt.Fprintf(w, "skipped:   %s (already exists)\n", rel)
			}
			return nil
		}

		if err := copyFile(path, dest); err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
			return nil
		}
		result.Copied++
		if verbose {
			fmt.Fprintf(w, "copied:    %s\n", rel)
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walking media directory %s: %w", mediaDir, err)
	}

	fmt.Fprintf(w, "Media: %d copied, %d skipped, %d failed (total: %d)\n",
		result.Copied, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// copyFile copies src to dest, creating parent directories and carrying the
// source modification time over to the copy.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}

	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting times on %s: %w", dest, err)
	}
	return nil
}
