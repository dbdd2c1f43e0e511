// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	md := []byte("# Title\n\nSome **bold** text.\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n")
	html, err := ToHTML(md)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	for _, want := range []string{"<h1", "<strong>bold</strong>", "<table>"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
}

func TestStripFrontmatter(t *testing.T) {
	md := []byte("---\ntitle: X\n---\n\n# Body\n")
	got := StripFrontmatter(md)
	if strings.Contains(string(got), "title: X") {
		t.Errorf("frontmatter not stripped: %q", got)
	}
	if !strings.Contains(string(got), "# Body") {
		t.Errorf("body lost: %q", got)
	}

	plain := []byte("# No frontmatter\n")
	if !bytes.Equal(StripFrontmatter(plain), plain) {
		t.Error("pages without frontmatter must pass through unchanged")
	}
}

func TestLocalLinks(t *testing.T) {
	md := []byte(strings.Join([]string{
		"# Page",
		"",
		"[internal](foo/bar.md) and [external](https://example.com) and [anchor](#here).",
		"",
		"![img](_media/wiki/logo.png) ![ext](https://img.example.com/x.png)",
	}, "\n"))

	links, err := LocalLinks(md)
	if err != nil {
		t.Fatalf("LocalLinks: %v", err)
	}

	want := []string{"foo/bar.md", "_media/wiki/logo.png"}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestCheckTree(t *testing.T) {
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(out, "foo"), 0o755); err != nil {
		t.Fatal(err)
	}

	good := "---\ntitle: Good\n---\n\n# Good\n\n[ok](foo/other.md)\n"
	other := "# Other\n"
	bad := "# Bad\n\n[missing](nowhere/gone.md)\n"

	for path, content := range map[string]string{
		"good.md":      good,
		"foo/other.md": other,
		"bad.md":       bad,
	} {
		if err := os.WriteFile(filepath.Join(out, path), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var log bytes.Buffer
	result, err := CheckTree(out, &log)
	if err != nil {
		t.Fatalf("CheckTree: %v", err)
	}

	if result.Pages != 3 {
		t.Errorf("pages = %d, want 3", result.Pages)
	}
	if result.BrokenLinks != 1 {
		t.Errorf("broken links = %d, want 1", result.BrokenLinks)
	}
	if !result.HasProblems() {
		t.Error("expected problems to be reported")
	}
	if !strings.Contains(log.String(), "nowhere/gone.md") {
		t.Errorf("missing broken link report in %q", log.String())
	}
}
