package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syria.txt")
	content := "Syrian Arab Republic\n\n1. General Information\nCapital: Damascus\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rep, err := loadReport(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Title != "Syrian Arab Republic" {
		t.Errorf("expected title %q, got %q", "Syrian Arab Republic", rep.Title)
	}
	if len(rep.Sections) != 1 {
		t.Errorf("expected 1 section, got %d", len(rep.Sections))
	}
}

func TestLoadReport_UnsupportedExtension(t *testing.T) {
	if _, err := loadReport("sheet.xlsx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadReport_MissingFile(t *testing.T) {
	if _, err := loadReport(filepath.Join(t.TempDir(), "ghost.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
