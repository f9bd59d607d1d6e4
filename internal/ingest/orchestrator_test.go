package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/hkanaan/factsheet/internal/archive"
	"github.com/hkanaan/factsheet/internal/config"
	"github.com/hkanaan/factsheet/internal/library"
)

const sheetText = `Syrian Arab Republic

1. General Information
Capital: Damascus
Major Cities:
  - Aleppo
  - Homs
`

func testOrchestrator(t *testing.T, db *archive.DB) *Orchestrator {
	t.Helper()
	cfg := config.Config{
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, library.New(), db, log)
}

func TestOrchestrator_Ingest(t *testing.T) {
	o := testOrchestrator(t, nil)

	meta, err := o.Ingest([]byte(sheetText), "syria.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.ID == "" {
		t.Error("expected a generated report ID")
	}
	if meta.Title != "Syrian Arab Republic" {
		t.Errorf("expected title from document, got %q", meta.Title)
	}
	if meta.SectionCount != 1 {
		t.Errorf("expected 1 section, got %d", meta.SectionCount)
	}
	if meta.EntryCount != 2 {
		t.Errorf("expected 2 entries, got %d", meta.EntryCount)
	}

	rec, ok := o.Library().Get(meta.ID)
	if !ok {
		t.Fatal("expected report in library")
	}
	if _, err := rec.Store.Section("1"); err != nil {
		t.Errorf("stored report not queryable: %v", err)
	}

	if o.Stats.Snapshot().Count != 1 {
		t.Error("expected one parse latency sample")
	}
}

func TestOrchestrator_IngestDuplicate(t *testing.T) {
	o := testOrchestrator(t, nil)

	first, err := o.Ingest([]byte(sheetText), "syria.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = o.Ingest([]byte(sheetText), "copy.txt")
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.ReportID != first.ID {
		t.Errorf("expected duplicate of %s, got %s", first.ID, dup.ReportID)
	}
	if o.Library().Len() != 1 {
		t.Errorf("expected single report, got %d", o.Library().Len())
	}
}

func TestOrchestrator_IngestParseError(t *testing.T) {
	o := testOrchestrator(t, nil)

	if _, err := o.Ingest([]byte("no sections here"), "bad.txt"); err == nil {
		t.Fatal("expected parse error")
	}
	if o.Library().Len() != 0 {
		t.Error("failed parse must not load a report")
	}
}

func TestOrchestrator_IngestUnsupportedExtension(t *testing.T) {
	o := testOrchestrator(t, nil)
	if _, err := o.Ingest([]byte("data"), "notes.xlsx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestOrchestrator_IngestTitleFallback(t *testing.T) {
	o := testOrchestrator(t, nil)

	meta, err := o.Ingest([]byte("1. Overview\nCapital: Oslo\n"), "norway.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "norway" {
		t.Errorf("expected filename fallback title, got %q", meta.Title)
	}
}

func TestOrchestrator_Remove(t *testing.T) {
	o := testOrchestrator(t, nil)

	meta, err := o.Ingest([]byte(sheetText), "syria.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := o.Remove(meta.ID)
	if err != nil || !ok {
		t.Fatalf("expected removal, got ok=%v err=%v", ok, err)
	}
	ok, err = o.Remove(meta.ID)
	if err != nil || ok {
		t.Fatalf("expected miss on second removal, got ok=%v err=%v", ok, err)
	}
}

func TestOrchestrator_IngestPersists(t *testing.T) {
	db, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer db.Close()

	o := testOrchestrator(t, db)
	meta, err := o.Ingest([]byte(sheetText), "syria.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := db.LoadAll()
	if err != nil {
		t.Fatalf("load archive: %v", err)
	}
	if len(stored) != 1 || stored[0].Meta.ID != meta.ID {
		t.Fatalf("expected report %s in archive, got %#v", meta.ID, stored)
	}
}

func TestOrchestrator_SubmitAndProcess(t *testing.T) {
	o := testOrchestrator(t, nil)
	o.Start(context.Background())
	defer o.Stop()

	job := &Job{
		ID:        "job-1",
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  "syria.txt",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData([]byte(sheetText))

	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := o.GetJob("job-1").Snapshot()
		if snap.Status == StatusCompleted {
			if snap.ReportID == "" {
				t.Error("expected report ID on completed job")
			}
			if snap.Title != "Syrian Arab Republic" {
				t.Errorf("unexpected title %q", snap.Title)
			}
			return
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %s", snap.Error)
		}
		select {
		case <-deadline:
			t.Fatalf("job did not complete, status %q", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestrator_SubmitDuplicateSkipped(t *testing.T) {
	o := testOrchestrator(t, nil)
	if _, err := o.Ingest([]byte(sheetText), "syria.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o.Start(context.Background())
	defer o.Stop()

	job := &Job{ID: "dup-1", Status: StatusQueued, Filename: "copy.txt", UpdatedAt: time.Now()}
	job.SetFileData([]byte(sheetText))
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := o.GetJob("dup-1").Snapshot()
		if snap.Status == StatusDupSkipped {
			if snap.ReportID == "" {
				t.Error("expected the existing report ID on a skipped duplicate")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("job not marked duplicate, status %q", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestrator_SubmitQueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	o := NewOrchestrator(cfg, library.New(), nil, log)
	// Workers never started, so the queue fills up.

	first := &Job{ID: "q-1", UpdatedAt: time.Now()}
	if err := o.Submit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &Job{ID: "q-2", UpdatedAt: time.Now()}
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Error("expected rejected job marked failed")
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
