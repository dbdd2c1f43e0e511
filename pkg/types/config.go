// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and record types shared across the
// dokuport pipeline stages.
package types

// SourceConfig locates the DokuWiki data directories the converter reads.
type SourceConfig struct {
	// PagesDir is the DokuWiki data/pages directory (tree of *.txt pages).
	PagesDir string `json:"pages_dir" yaml:"pages_dir"`

	// MediaDir is the DokuWiki data/media directory. Empty disables the
	// media copy stage.
	MediaDir string `json:"media_dir,omitempty" yaml:"media_dir,omitempty"`
}

// OutputConfig describes the destination tree for converted Markdown.
type OutputConfig struct {
	// Dir is the root of the generated import folder.
	Dir string `json:"dir" yaml:"dir"`

	// Force overwrites files that already exist in the output tree.
	// Without it an existing file counts as skipped.
	Force bool `json:"force" yaml:"force"`
}

// ConversionBackend identifies the markup conversion engine.
type ConversionBackend string

const (
	// BackendBuiltin is the self-contained regex converter.
	BackendBuiltin ConversionBackend = "builtin"

	// BackendPandoc pipes pages through a local pandoc binary, which covers
	// more DokuWiki edge cases than the builtin converter.
	BackendPandoc ConversionBackend = "pandoc"
)

// ConvertConfig holds settings for the markup conversion stage.
type ConvertConfig struct {
	// Backend selects the conversion engine: builtin or pandoc.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// SkipUnchanged consults the manifest and skips pages whose source
	// content is unchanged since the last run.
	SkipUnchanged bool `json:"skip_unchanged" yaml:"skip_unchanged"`
}

// ManifestConfig holds settings for the conversion manifest database.
type ManifestConfig struct {
	// Path is the SQLite manifest file. Empty defaults to
	// <output dir>/.dokuport.db.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// SiteConfig groups all stage configurations for a full conversion run.
type SiteConfig struct {
	Source   SourceConfig   `json:"source" yaml:"source"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Convert  ConvertConfig  `json:"convert" yaml:"convert"`
	Manifest ManifestConfig `json:"manifest" yaml:"manifest"`

	// Verbose prints per-page detail during conversion.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
