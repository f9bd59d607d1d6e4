package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hkanaan/factsheet/internal/archive"
	"github.com/hkanaan/factsheet/internal/config"
	"github.com/hkanaan/factsheet/internal/library"
	"github.com/hkanaan/factsheet/internal/parser"
	"github.com/hkanaan/factsheet/internal/store"
)

// Orchestrator manages the fact-sheet ingestion pipeline: a bounded
// queue feeding parse workers that load reports into the library and
// archive.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	lib   *library.Library
	db    *archive.DB
	log   *slog.Logger
	cfg   config.Config

	// Stats aggregates parse latencies for the stats endpoint.
	Stats *ParseStats

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. db may be nil to skip
// persistence.
func NewOrchestrator(cfg config.Config, lib *library.Library, db *archive.DB, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		lib:   lib,
		db:    db,
		log:   log,
		cfg:   cfg,
		Stats: NewParseStats(time.Hour),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(job)
				}
			}
		}()
	}

	// Job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Library returns the report registry for direct use by API handlers.
func (o *Orchestrator) Library() *library.Library {
	return o.lib
}

// Archive returns the persistence layer, which may be nil.
func (o *Orchestrator) Archive() *archive.DB {
	return o.db
}

func (o *Orchestrator) process(job *Job) {
	job.SetStatus(StatusParsing, "parsing")
	meta, err := o.Ingest(job.FileData(), job.Filename)
	if err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			job.Complete(StatusDupSkipped, dup.ReportID, dup.Title)
			return
		}
		job.Fail("ingest", err)
		o.log.Warn("ingest failed", "job_id", job.ID, "filename", job.Filename, "error", err)
		return
	}
	job.Complete(StatusCompleted, meta.ID, meta.Title)
	o.log.Info("report ingested", "report_id", meta.ID, "title", meta.Title, "sections", meta.SectionCount)
}

// DuplicateError signals that the uploaded content is already loaded.
type DuplicateError struct {
	ReportID string
	Title    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate of report %s (%s)", e.ReportID, e.Title)
}

// Ingest parses raw fact-sheet bytes and loads the result into the
// library and archive. It is safe for concurrent use and also serves the
// synchronous upload path.
func (o *Orchestrator) Ingest(data []byte, filename string) (library.Meta, error) {
	hash := ContentHashHex(data)
	if rec, ok := o.lib.ByHash(hash); ok {
		return library.Meta{}, &DuplicateError{ReportID: rec.ID, Title: rec.Title}
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		return library.Meta{}, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = o.cfg.PDFFallbackPdftotext
	}

	start := time.Now()
	rep, err := p.Parse(bytes.NewReader(data), filename)
	o.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return library.Meta{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	title := rep.Title
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	meta := library.Meta{
		ID:           uuid.NewString(),
		Title:        title,
		Filename:     filename,
		SectionCount: len(rep.Sections),
		EntryCount:   rep.EntryCount(),
		ContentHash:  hash,
		CreatedAt:    time.Now().UTC(),
	}

	if o.db != nil {
		if err := o.db.Save(meta, rep); err != nil {
			return library.Meta{}, err
		}
	}
	o.lib.Put(&library.Record{Meta: meta, Store: store.New(rep)})
	return meta, nil
}

// Remove deletes a report from the library and the archive.
func (o *Orchestrator) Remove(id string) (bool, error) {
	if !o.lib.Delete(id) {
		return false, nil
	}
	if o.db != nil {
		if err := o.db.Delete(id); err != nil {
			return true, err
		}
	}
	return true, nil
}
