// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc runs a local pandoc binary as an alternative conversion
// engine. Pandoc ships a DokuWiki reader and covers markup edge cases the
// builtin regex engine does not attempt.
package pandoc

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPandoc = "pandoc"

// pandocArgs converts DokuWiki input on stdin to GitHub-flavored Markdown
// on stdout.
var pandocArgs = []string{"-f", "dokuwiki", "-t", "gfm"}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// Engine pipes page text through pandoc. It implements doku.Converter.
type Engine struct {
	exec executor
}

// NewEngine locates pandoc on PATH and returns an Engine using it. It fails
// when the binary is missing so callers can fall back to the builtin engine
// before any page is touched.
func NewEngine() (*Engine, error) {
	return newEngine(&osExecutor{})
}

func newEngine(exec executor) (*Engine, error) {
	if _, err := exec.LookPath(binPandoc); err != nil {
		return nil, fmt.Errorf("pandoc not found on PATH: %w", err)
	}
	return &Engine{exec: exec}, nil
}

// Convert pipes src through pandoc and returns the Markdown output.
func (e *Engine) Convert(src, pageID string) (string, error) {
	var out bytes.Buffer
	if err := e.exec.RunPiped(binPandoc, pandocArgs, strings.NewReader(src), &out); err != nil {
		return "", fmt.Errorf("converting %s with pandoc: %w", pageID, err)
	}
	if out.Len() == 0 && strings.TrimSpace(src) != "" {
		return "", fmt.Errorf("pandoc produced empty output for %s", pageID)
	}
	return out.String(), nil
}
