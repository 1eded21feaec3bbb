// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDescriptor(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoad_CountsAndErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "Wires.json", `{"Name": "Wires"}`)
	writeDescriptor(t, dir, "The Button.json", `{"Name": "The Button"}`)
	writeDescriptor(t, dir, "Broken.json", `{"Name": `)
	writeDescriptor(t, dir, "notes.txt", `not a descriptor`)

	result, err := Load(context.Background(), dir, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(result.Entries))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Broken.json: ") {
		t.Errorf("error should be prefixed with the file name, got %q", result.Errors[0])
	}
}

func TestLoad_SortedByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "zulu.json", `{"Name": "zulu"}`)
	writeDescriptor(t, dir, "Alpha.json", `{"Name": "Alpha"}`)
	writeDescriptor(t, dir, "bravo.json", `{"Name": "bravo"}`)

	result, err := Load(context.Background(), dir, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var names []string
	for _, e := range result.Entries {
		names = append(names, e.Module.Name)
	}
	want := []string{"Alpha", "bravo", "zulu"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entries order = %v, want %v", names, want)
		}
	}
}

func TestLoad_MergeCallbackRunsPerRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "Wires.json", `{"Name": "Wires"}`)
	writeDescriptor(t, dir, "Maze.json", `{"Name": "Maze"}`)

	result, err := Load(context.Background(), dir, LoadOptions{
		Merge: func(m *Module) {
			m.Description = "merged"
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range result.Entries {
		if e.Module.Description != "merged" {
			t.Errorf("merge callback not applied to %s", e.Module.Name)
		}
	}
}

func TestLoad_DerivedFileName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "Wires.json", `{"Name": "Wires"}`)
	writeDescriptor(t, dir, "forget-me-not.json", `{"Name": "Forget Me Not"}`)

	result, err := Load(context.Background(), dir, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range result.Entries {
		switch e.Module.Name {
		case "Wires":
			if e.Derived.FileName != "" {
				t.Errorf("FileName should be empty when it equals Name, got %q", e.Derived.FileName)
			}
			if e.FileBase != "Wires" {
				t.Errorf("FileBase = %q, want Wires", e.FileBase)
			}
		case "Forget Me Not":
			if e.Derived.FileName != "forget-me-not" {
				t.Errorf("FileName = %q, want forget-me-not", e.Derived.FileName)
			}
		}
	}
}

func TestLoad_AuthorFallsBackToContributors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "Solo.json", `{"Name": "Solo", "Contributors": ["Ada"]}`)
	writeDescriptor(t, dir, "Trio.json", `{"Name": "Trio", "Contributors": ["Ada", "Ben", "Cy"]}`)
	writeDescriptor(t, dir, "Signed.json", `{"Name": "Signed", "Author": "Dee", "Contributors": ["Ada"]}`)

	result, err := Load(context.Background(), dir, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"Solo":   "Ada",
		"Trio":   "Ada, Ben and Cy",
		"Signed": "Dee",
	}
	for _, e := range result.Entries {
		if got := e.Module.Author; got != want[e.Module.Name] {
			t.Errorf("%s: Author = %q, want %q", e.Module.Name, got, want[e.Module.Name])
		}
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	t.Parallel()

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"), LoadOptions{}); err == nil {
		t.Fatal("missing descriptor directory should fail the load")
	}
}
