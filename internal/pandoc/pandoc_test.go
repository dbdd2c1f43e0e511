// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	onPath       bool
	runPipedFunc func(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout)
	}
	return nil
}

func TestNewEngineRequiresPandoc(t *testing.T) {
	if _, err := newEngine(&mockExecutor{onPath: false}); err == nil {
		t.Fatal("expected error when pandoc is missing from PATH")
	}
	if _, err := newEngine(&mockExecutor{onPath: true}); err != nil {
		t.Fatalf("unexpected error with pandoc on PATH: %v", err)
	}
}

func TestConvertPipesThroughPandoc(t *testing.T) {
	var gotArgs []string
	var gotInput string

	exec := &mockExecutor{
		onPath: true,
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			gotArgs = append([]string{name}, args...)
			in, _ := io.ReadAll(stdin)
			gotInput = string(in)
			_, err := stdout.Write([]byte("# Converted\n"))
			return err
		},
	}

	e, err := newEngine(exec)
	if err != nil {
		t.Fatal(err)
	}

	out, err := e.Convert("====== Title ======", "some:page")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out != "# Converted\n" {
		t.Errorf("output = %q", out)
	}
	if gotInput != "====== Title ======" {
		t.Errorf("stdin = %q", gotInput)
	}
	want := "pandoc -f dokuwiki -t gfm"
	if got := strings.Join(gotArgs, " "); got != want {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
		src  string
	}{
		{
			name: "pandoc failure",
			src:  "content",
			exec: &mockExecutor{
				onPath: true,
				runPipedFunc: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
					return errors.New("exit status 64")
				},
			},
		},
		{
			name: "empty output for non-empty input",
			src:  "content",
			exec: &mockExecutor{onPath: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := newEngine(tt.exec)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := e.Convert(tt.src, "some:page"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
