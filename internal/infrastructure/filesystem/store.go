package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytdlapi/internal/domain/download"
)

// Suffixes the extraction engine uses for files it is still writing.
var partialSuffixes = []string{".part", ".ytdl", ".temp", ".tmp"}

// Store keeps finished downloads in a single flat directory.
type Store struct {
	Dir string
}

// NewStore creates filesystem adapter rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// EnsureDir creates the artifact directory if it is missing.
func (s *Store) EnsureDir() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// OutputTemplate returns the engine output template for a job. The engine
// substitutes the extension.
func (s *Store) OutputTemplate(jobID string) string {
	return filepath.Join(s.Dir, jobID+".%(ext)s")
}

// FindArtifact locates the finished file of a job by its id prefix.
func (s *Store) FindArtifact(jobID string) (download.Artifact, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return download.Artifact{}, err
	}

	prefix := jobID + "."
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || isPartial(name) {
			continue
		}
		// Intermediate streams look like <id>.f137.mp4; the merged file has one extension.
		if strings.Contains(strings.TrimPrefix(name, prefix), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		return download.Artifact{Name: name, Size: info.Size(), ModifiedAt: info.ModTime()}, nil
	}
	return download.Artifact{}, fmt.Errorf("no artifact for %s: %w", jobID, os.ErrNotExist)
}

// ArtifactPath returns the full path of an existing artifact.
func (s *Store) ArtifactPath(name string) (string, error) {
	full, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(full)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return full, nil
}

// ListArtifacts returns regular files directly under the store directory,
// oldest first. A missing directory yields an empty list.
func (s *Store) ListArtifacts() ([]download.Artifact, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	artifacts := make([]download.Artifact, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, download.Artifact{
			Name:       entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].ModifiedAt.Before(artifacts[j].ModifiedAt)
	})
	return artifacts, nil
}

// RemoveArtifact deletes a file from the store.
func (s *Store) RemoveArtifact(name string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (s *Store) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", errors.New("invalid file name")
	}
	full := filepath.Join(s.Dir, name)
	if !isWithinDir(s.Dir, full) {
		return "", errors.New("invalid file path")
	}
	return full, nil
}

func isPartial(name string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func isWithinDir(basePath, targetPath string) bool {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return false
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return false
	}
	sep := string(os.PathSeparator)
	if rel == ".." || strings.HasPrefix(rel, ".."+sep) {
		return false
	}
	return true
}
