// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/dokuport/pkg/types"
)

// fakeConverter implements doku.Converter for testing. It returns canned
// Markdown or an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
	calls  int
}

func (f *fakeConverter) Convert(src, pageID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// fakeRecorder implements Recorder in memory.
type fakeRecorder struct {
	checksums map[string]string
	recorded  map[string]types.ConversionStatus
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		checksums: make(map[string]string),
		recorded:  make(map[string]types.ConversionStatus),
	}
}

func (f *fakeRecorder) Unchanged(id, checksum string) (bool, error) {
	return f.checksums[id] == checksum, nil
}

func (f *fakeRecorder) Record(page types.Page, checksum string, status types.ConversionStatus) error {
	f.checksums[page.ID] = checksum
	f.recorded[page.ID] = status
	return nil
}

// setupPages creates a pages tree with one namespaced page and returns the
// pages dir and a config writing into the same temp root.
func setupPages(t *testing.T) (string, types.SiteConfig) {
	t.Helper()
	root := t.TempDir()
	pagesDir := filepath.Join(root, "pages")
	nsDir := filepath.Join(pagesDir, "foo", "bar")
	if err := os.MkdirAll(nsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := "====== Baz ======\n\nSome //content// here.\n"
	if err := os.WriteFile(filepath.Join(nsDir, "baz.txt"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.SiteConfig{
		Source: types.SourceConfig{PagesDir: pagesDir},
		Output: types.OutputConfig{Dir: filepath.Join(root, "out")},
	}
	return pagesDir, cfg
}

func TestWalkPages(t *testing.T) {
	pagesDir, _ := setupPages(t)

	pages, err := WalkPages(pagesDir)
	if err != nil {
		t.Fatalf("WalkPages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if pages[0].ID != "foo:bar:baz" {
		t.Errorf("ID = %q, want foo:bar:baz", pages[0].ID)
	}
	if pages[0].RelPath != "foo/bar/baz.md" {
		t.Errorf("RelPath = %q, want foo/bar/baz.md", pages[0].RelPath)
	}
}

func TestPageFromPathRejectsOutsidePagesDir(t *testing.T) {
	root := t.TempDir()
	pagesDir := filepath.Join(root, "pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(root, "elsewhere", "evil.txt")
	if err := os.MkdirAll(filepath.Dir(outside), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(outside, []byte("== x =="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := PageFromPath(pagesDir, outside); err == nil {
		t.Fatal("expected error for a page outside the pages directory")
	}

	// A page inside the tree still resolves.
	inside := filepath.Join(pagesDir, "ok.txt")
	if err := os.WriteFile(inside, []byte("== x =="), 0o644); err != nil {
		t.Fatal(err)
	}
	page, err := PageFromPath(pagesDir, inside)
	if err != nil {
		t.Fatalf("PageFromPath inside pages dir: %v", err)
	}
	if page.RelPath != "ok.md" {
		t.Errorf("RelPath = %q, want ok.md", page.RelPath)
	}
}

func TestConvertPage(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  bool // create the output file before running
		force      bool
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{output: "# Baz\n\nContent."},
			wantStatus: types.StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing output",
			converter:  &fakeConverter{output: "should not be written"},
			preCreate:  true,
			wantStatus: types.StatusSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force overwrites existing output",
			converter:  &fakeConverter{output: "# Fresh"},
			preCreate:  true,
			force:      true,
			wantStatus: types.StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("engine exploded")},
			wantStatus: types.StatusFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pagesDir, cfg := setupPages(t)
			cfg.Output.Force = tt.force

			pages, err := WalkPages(pagesDir)
			if err != nil {
				t.Fatal(err)
			}
			outPath := filepath.Join(cfg.Output.Dir, "foo", "bar", "baz.md")

			if tt.preCreate {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(outPath, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertPage(tt.converter, pages[0], cfg, nil, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertPageFrontmatter(t *testing.T) {
	pagesDir, cfg := setupPages(t)

	pages, err := WalkPages(pagesDir)
	if err != nil {
		t.Fatal(err)
	}

	conv := &fakeConverter{output: "# The Baz Page\n\nBody."}
	var log bytes.Buffer
	if status := ConvertPage(conv, pages[0], cfg, nil, &log); status != types.StatusConverted {
		t.Fatalf("status = %q", status)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "foo", "bar", "baz.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("output missing frontmatter fence:\n%s", content)
	}
	for _, want := range []string{"title: The Baz Page", "source: foo:bar:baz", "# The Baz Page"} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q:\n%s", want, content)
		}
	}
}

func TestConvertPageSkipUnchanged(t *testing.T) {
	pagesDir, cfg := setupPages(t)
	cfg.Convert.SkipUnchanged = true
	cfg.Output.Force = true

	pages, err := WalkPages(pagesDir)
	if err != nil {
		t.Fatal(err)
	}

	rec := newFakeRecorder()
	conv := &fakeConverter{output: "# Baz"}
	var log bytes.Buffer

	if status := ConvertPage(conv, pages[0], cfg, rec, &log); status != types.StatusConverted {
		t.Fatalf("first run status = %q", status)
	}
	if status := ConvertPage(conv, pages[0], cfg, rec, &log); status != types.StatusUnchanged {
		t.Fatalf("second run status = %q, want unchanged", status)
	}
	if conv.calls != 1 {
		t.Errorf("converter called %d times, want 1", conv.calls)
	}
}

func TestConvertPageRegeneratesDeletedOutput(t *testing.T) {
	pagesDir, cfg := setupPages(t)
	cfg.Convert.SkipUnchanged = true
	cfg.Output.Force = true

	pages, err := WalkPages(pagesDir)
	if err != nil {
		t.Fatal(err)
	}

	rec := newFakeRecorder()
	conv := &fakeConverter{output: "# Baz"}
	var log bytes.Buffer

	if status := ConvertPage(conv, pages[0], cfg, rec, &log); status != types.StatusConverted {
		t.Fatalf("first run status = %q", status)
	}

	outPath := filepath.Join(cfg.Output.Dir, "foo", "bar", "baz.md")
	if err := os.Remove(outPath); err != nil {
		t.Fatal(err)
	}

	if status := ConvertPage(conv, pages[0], cfg, rec, &log); status != types.StatusConverted {
		t.Fatalf("rerun after output deletion: status = %q, want converted", status)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file not regenerated: %v", err)
	}
}

func TestPageTitleSkipsCodeFences(t *testing.T) {
	body := strings.Join([]string{
		"```bash",
		"# not a heading",
		"```",
		"",
		"## Real Title",
		"",
		"Body.",
	}, "\n")
	page := types.Page{ID: "ns:page"}

	if got := pageTitle(page, body); got != "Real Title" {
		t.Errorf("pageTitle = %q, want Real Title", got)
	}

	// No heading at all falls back to the last namespace segment.
	if got := pageTitle(page, "```\n# comment\n```\nplain text"); got != "page" {
		t.Errorf("pageTitle fallback = %q, want page", got)
	}
}

func TestConvertBatchSummary(t *testing.T) {
	pagesDir, cfg := setupPages(t)

	// Second page alongside the first.
	if err := os.WriteFile(filepath.Join(pagesDir, "start.txt"), []byte("== Start =="), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := WalkPages(pagesDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	var log bytes.Buffer
	result := ConvertBatch(&fakeConverter{output: "# ok"}, pages, cfg, nil, &log)

	if result.Converted != 2 || result.HasFailures() {
		t.Errorf("result = %+v, want 2 converted, no failures", result)
	}
	if !strings.Contains(log.String(), "Batch summary: 2 converted") {
		t.Errorf("missing batch summary in %q", log.String())
	}
}
