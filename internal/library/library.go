// Package library holds the reports currently loaded into the service.
// Reports are immutable once parsed, so the registry only guards its own
// map; readers share the stored reports freely.
package library

import (
	"sort"
	"sync"
	"time"

	"github.com/hkanaan/factsheet/internal/store"
)

// Meta describes a loaded report.
type Meta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	SectionCount int       `json:"section_count"`
	EntryCount   int       `json:"entry_count"`
	ContentHash  string    `json:"content_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Record pairs a report's metadata with its query store.
type Record struct {
	Meta
	Store *store.Store
}

// Library is a thread-safe registry of loaded reports.
type Library struct {
	mu     sync.RWMutex
	byID   map[string]*Record
	byHash map[string]string // content hash -> report ID
}

func New() *Library {
	return &Library{
		byID:   make(map[string]*Record),
		byHash: make(map[string]string),
	}
}

// Put registers a record, replacing any previous record with the same ID.
func (l *Library) Put(rec *Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID[rec.ID] = rec
	if rec.ContentHash != "" {
		l.byHash[rec.ContentHash] = rec.ID
	}
}

// Get returns the record with the given ID.
func (l *Library) Get(id string) (*Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.byID[id]
	return rec, ok
}

// ByHash returns the record with the given content hash, if any.
func (l *Library) ByHash(hash string) (*Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.byHash[hash]
	if !ok {
		return nil, false
	}
	rec, ok := l.byID[id]
	return rec, ok
}

// Delete removes a record. It reports whether the record existed.
func (l *Library) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.byID[id]
	if !ok {
		return false
	}
	delete(l.byID, id)
	if rec.ContentHash != "" && l.byHash[rec.ContentHash] == id {
		delete(l.byHash, rec.ContentHash)
	}
	return true
}

// List returns metadata for all loaded reports, oldest first.
func (l *Library) List() []Meta {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Meta, 0, len(l.byID))
	for _, rec := range l.byID {
		out = append(out, rec.Meta)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of loaded reports.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID)
}
