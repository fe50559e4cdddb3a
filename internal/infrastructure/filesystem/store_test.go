package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return full
}

func TestFindArtifact_MatchesMergedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	writeFile(t, dir, "job-1.f137.mp4", 10)
	writeFile(t, dir, "job-1.mp4.part", 10)
	writeFile(t, dir, "job-10.mp4", 10)
	writeFile(t, dir, "job-1.mp4", 42)

	artifact, err := store.FindArtifact("job-1")
	if err != nil {
		t.Fatalf("expected artifact, got %v", err)
	}
	if artifact.Name != "job-1.mp4" || artifact.Size != 42 {
		t.Fatalf("unexpected artifact %+v", artifact)
	}
}

func TestFindArtifact_MissingReturnsNotExist(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.FindArtifact("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOutputTemplate_UsesJobID(t *testing.T) {
	store := NewStore("/data/downloads")
	want := filepath.Join("/data/downloads", "abc.%(ext)s")
	if got := store.OutputTemplate("abc"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestListArtifacts_SkipsDirectoriesAndMissingRoot(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	writeFile(t, dir, "a.mp4", 1)
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	artifacts, err := store.ListArtifacts()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Name != "a.mp4" {
		t.Fatalf("unexpected artifacts %+v", artifacts)
	}

	missing := NewStore(filepath.Join(dir, "absent"))
	artifacts, err = missing.ListArtifacts()
	if err != nil || len(artifacts) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v %v", artifacts, err)
	}
}

func TestListArtifacts_OldestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	newer := writeFile(t, dir, "new.mp4", 1)
	older := writeFile(t, dir, "old.mp4", 1)
	now := time.Now()
	_ = os.Chtimes(newer, now, now)
	_ = os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour))

	artifacts, err := store.ListArtifacts()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if artifacts[0].Name != "old.mp4" {
		t.Fatalf("expected old.mp4 first, got %s", artifacts[0].Name)
	}
}

func TestArtifactPath_RejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.ArtifactPath("../etc/passwd"); err == nil {
		t.Fatalf("expected error for traversal")
	}
	if err := store.RemoveArtifact("../x"); err == nil {
		t.Fatalf("expected error for traversal removal")
	}
}

func TestRemoveArtifact(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	writeFile(t, dir, "gone.mp4", 1)

	if err := store.RemoveArtifact("gone.mp4"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.ArtifactPath("gone.mp4"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist after removal, got %v", err)
	}
}
