package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/svgtext"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStdout(t *testing.T) {
	in := writeInput(t, "doc.json", `{"frames": [{"contents": ["Hi"]}]}`)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{in}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "<svg ") {
		t.Errorf("stdout has no SVG:\n%s", stdout.String())
	}
	if got := strings.Count(stdout.String(), "<use "); got != 2 {
		t.Errorf("found %d <use> elements, want 2", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %s", stderr.String())
	}
}

func TestRunOutputFile(t *testing.T) {
	in := writeInput(t, "doc.txt", "frames:\n  - contents: [Hi]\n")
	out := filepath.Join(t.TempDir(), "out.svg")

	var stdout, stderr bytes.Buffer
	args := []string{"--format", "yaml", "-o", out, "--copyable", "-v", in}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Error("nothing should go to stdout with --output")
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `fill="transparent"`) {
		t.Error("--copyable did not add selectable text")
	}
	if !strings.Contains(stderr.String(), "svg saved") {
		t.Errorf("verbose log missing:\n%s", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	bad := writeInput(t, "bad.json", `{"frames": [{"left": 10, "right": 5, "contents": ["x"]}]}`)
	good := writeInput(t, "good.json", `{"frames": []}`)
	out := filepath.Join(t.TempDir(), "out.svg")

	tests := []struct {
		name string
		args []string
		kind svgtext.Kind
	}{
		{"invalid frame", []string{"-o", out, bad}, svgtext.KindDecode},
		{"missing input", []string{filepath.Join(t.TempDir(), "none.json")}, svgtext.KindIO},
		{"bad font", []string{"--font", bad, good}, svgtext.KindLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if !svgtext.IsKind(err, tt.kind) {
				t.Fatalf("run() error = %v, want kind %v", err, tt.kind)
			}
			if stdout.Len() != 0 {
				t.Error("no output expected on error")
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file written despite error")
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--format", "xml", good}, &stdout, &stderr); err == nil {
		t.Error("unknown format accepted")
	}
	if err := run(context.Background(), nil, &stdout, &stderr); err == nil {
		t.Error("missing argument accepted")
	}
}
