// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package namespace maps colon-delimited DokuWiki identifiers to output
// paths. A page "foo:bar:baz" lands at "foo/bar/baz.md"; a media file
// "foo:diagram.png" lands at "_media/foo/diagram.png".
package namespace

import (
	"path"
	"strings"
)

const (
	// Sep is the DokuWiki namespace separator.
	Sep = ":"

	// MediaRoot is the directory under the output root that receives
	// copied media files.
	MediaRoot = "_media"
)

// ToPath converts a DokuWiki identifier to a slash-separated relative path.
// A leading colon (absolute identifier) is dropped; empty segments collapse.
func ToPath(id string) string {
	parts := strings.Split(strings.TrimPrefix(id, Sep), Sep)
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// FromPath converts a slash-separated relative path (without extension)
// back to a DokuWiki identifier.
func FromPath(rel string) string {
	rel = strings.Trim(path.Clean(filepathToSlash(rel)), "/")
	if rel == "." || rel == "" {
		return ""
	}
	return strings.ReplaceAll(rel, "/", Sep)
}

// PageFile returns the Markdown output path for a page identifier.
func PageFile(id string) string {
	return ToPath(id) + ".md"
}

// MediaFile returns the output path for a media identifier, rooted at
// MediaRoot. Size and cache suffixes ("?200x100", "?nolink") are stripped.
func MediaFile(id string) string {
	return path.Join(MediaRoot, ToPath(StripQuery(id)))
}

// StripQuery removes a DokuWiki media query suffix such as "?400" or
// "?direct&200".
func StripQuery(id string) string {
	if i := strings.IndexByte(id, '?'); i >= 0 {
		return id[:i]
	}
	return id
}

// SplitAnchor separates a section anchor from a page identifier:
// "page#section" yields ("page", "section").
func SplitAnchor(id string) (page, anchor string) {
	if i := strings.IndexByte(id, '#'); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

// IsExternal reports whether a link target is an external URL rather than a
// wiki identifier. DokuWiki external links carry a URL scheme or a bare
// "www." host.
func IsExternal(target string) bool {
	if strings.HasPrefix(target, "www.") {
		return true
	}
	if strings.HasPrefix(target, "mailto:") {
		return true
	}
	if i := strings.Index(target, "://"); i > 0 {
		scheme := target[:i]
		for _, r := range scheme {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
				return false
			}
		}
		return true
	}
	return false
}

// filepathToSlash normalizes Windows-style separators without importing
// path/filepath, so identifier math stays platform independent.
func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
