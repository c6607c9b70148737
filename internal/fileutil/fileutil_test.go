package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "labels.pdf")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	dir := t.TempDir()
	err := WriteFileAtomic(filepath.Join(dir, "nope", "labels.pdf"), []byte("x"), 0o644)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestVerifyFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "labels.pdf")
	content := []byte("verified content")
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := VerifyFile(dst, content); err != nil {
		t.Fatal(err)
	}
	if err := VerifyFile(dst, []byte("verified contenT")); err == nil {
		t.Fatal("expected hash mismatch")
	}
	if err := VerifyFile(dst, []byte("short")); err == nil {
		t.Fatal("expected size mismatch")
	}
	if err := VerifyFile(filepath.Join(dir, "missing"), content); err == nil {
		t.Fatal("expected error for missing file")
	}
}
