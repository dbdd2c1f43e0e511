// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Page is the transient record for one wiki page moving through the
// converter: where it came from, its DokuWiki identity, and where the
// Markdown rendition goes.
type Page struct {
	// ID is the colon-delimited DokuWiki page identifier, e.g. "foo:bar:baz".
	ID string `json:"id" yaml:"id"`

	// SourcePath is the absolute or pages-dir-relative path of the *.txt file.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// RelPath is the output path relative to the output root, e.g.
	// "foo/bar/baz.md". Derived deterministically from ID.
	RelPath string `json:"rel_path" yaml:"rel_path"`
}

// ConversionStatus records the outcome for a single page.
type ConversionStatus string

const (
	// StatusConverted means the page was converted and written.
	StatusConverted ConversionStatus = "converted"

	// StatusSkipped means the output file already existed and force was off.
	StatusSkipped ConversionStatus = "skipped"

	// StatusUnchanged means the manifest shows the source content has not
	// changed since the last run.
	StatusUnchanged ConversionStatus = "unchanged"

	// StatusFailed means reading, converting, or writing the page failed.
	StatusFailed ConversionStatus = "failed"
)
