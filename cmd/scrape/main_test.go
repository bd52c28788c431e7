package main

import (
	"path/filepath"
	"testing"
)

func TestVersionPathFor(t *testing.T) {
	if got := versionPathFor(filepath.Join("data", "rosters.jsonl"), ""); got != filepath.Join("data", "version.txt") {
		t.Fatalf("unexpected default version path: %q", got)
	}
	if got := versionPathFor("rosters.jsonl", "meta/updated.txt"); got != "meta/updated.txt" {
		t.Fatalf("unexpected explicit version path: %q", got)
	}
}
