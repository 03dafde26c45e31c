package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetApplicationVersionPrefersLinkedVersion(t *testing.T) {
	previous := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = previous })
	if version := GetApplicationVersion(); version != "v9.9.9" {
		t.Fatalf("expected linked version, got %s", version)
	}
}

func TestFindRepositoryDirectoryWalksUpward(t *testing.T) {
	repository := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repository, GitDirectoryName), 0o755); err != nil {
		t.Fatalf("create git directory: %v", err)
	}
	nested := filepath.Join(repository, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("create nested directory: %v", err)
	}
	found, err := findRepositoryDirectory(nested)
	if err != nil {
		t.Fatalf("findRepositoryDirectory error: %v", err)
	}
	expected, _ := filepath.Abs(repository)
	if found != expected {
		t.Fatalf("expected %s, got %s", expected, found)
	}
}
