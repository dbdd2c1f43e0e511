// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doku converts DokuWiki markup to Markdown. The builtin engine is a
// self-contained single-pass line transformer; richer coverage is available
// through the pandoc backend, which also satisfies Converter.
package doku

// Converter transforms one page of DokuWiki markup into Markdown. pageID is
// the colon-delimited identifier of the page being converted, available to
// backends that resolve relative references.
type Converter interface {
	Convert(src, pageID string) (string, error)
}
