// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render builds HTML from converted Markdown pages and extracts
// local link targets for the check command. It wraps goldmark with the GFM
// extensions so tables and strikethrough from the converter round-trip.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// newMarkdown builds the goldmark instance shared by ToHTML and LocalLinks.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// ToHTML renders a converted page to HTML. Frontmatter is stripped before
// rendering.
func ToHTML(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert(StripFrontmatter(md), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// LocalLinks returns the link and image destinations in md that point at
// local files: anything without a URL scheme and not a pure anchor.
func LocalLinks(md []byte) ([]string, error) {
	src := StripFrontmatter(md)
	doc := newMarkdown().Parser().Parse(text.NewReader(src))

	var links []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch v := n.(type) {
		case *ast.Link:
			dest = string(v.Destination)
		case *ast.Image:
			dest = string(v.Destination)
		default:
			return ast.WalkContinue, nil
		}
		if dest == "" || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") ||
			strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "www.") {
			return ast.WalkContinue, nil
		}
		links = append(links, dest)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking markdown ast: %w", err)
	}
	return links, nil
}

// StripFrontmatter removes a leading YAML frontmatter block delimited by
// "---" lines.
func StripFrontmatter(md []byte) []byte {
	const fence = "---\n"
	if !bytes.HasPrefix(md, []byte(fence)) {
		return md
	}
	rest := md[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return md
	}
	return rest[end+len(fence)+1:]
}
