package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeText(t *testing.T) {
	out, err := runCommand(t, "analyze", "testdata/branch.yaml", "--max-heat", "4")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, "line") {
		t.Errorf("missing table header in output:\n%s", out)
	}
	// Five instruction lines in the fixture.
	rows := strings.Count(strings.TrimRight(out, "\n"), "\n")
	if rows != 5 {
		t.Errorf("expected 5 result rows, got %d:\n%s", rows, out)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := runCommand(t, "analyze", "testdata/branch.yaml", "--format", "json")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, `"line": 0`) {
		t.Errorf("missing line 0 in JSON output:\n%s", out)
	}
}

func TestAnalyzeUnknownFormat(t *testing.T) {
	if _, err := runCommand(t, "analyze", "testdata/branch.yaml", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestAnalyzeMissingFixture(t *testing.T) {
	if _, err := runCommand(t, "analyze", "testdata/nope.yaml"); err == nil {
		t.Fatalf("expected error for missing fixture")
	}
}

func TestPaths(t *testing.T) {
	out, err := runCommand(t, "paths", "testdata/branch.yaml")
	if err != nil {
		t.Fatalf("paths failed: %v", err)
	}
	if !strings.Contains(out, "path: [1 2 4 0]") || !strings.Contains(out, "path: [1 3 4 0]") {
		t.Errorf("expected both diamond paths, got:\n%s", out)
	}
	if !strings.Contains(out, "merge points: [4]") {
		t.Errorf("expected node 4 as merge point, got:\n%s", out)
	}
}
