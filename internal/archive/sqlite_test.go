package archive_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hkanaan/factsheet/internal/archive"
	"github.com/hkanaan/factsheet/internal/library"
	"github.com/hkanaan/factsheet/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *archive.DB {
	t.Helper()
	db, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testReport() *report.Report {
	return &report.Report{
		Title: "Syrian Arab Republic",
		Sections: []*report.Section{
			{Number: 1, Title: "General Information", Entries: []report.Entry{
				report.Field{Name: "Capital", Value: "Damascus"},
				report.ListField{Name: "Major Cities", Values: []string{"Aleppo", "Homs"}},
			}},
		},
	}
}

func testMeta(id string, created time.Time) library.Meta {
	return library.Meta{
		ID:           id,
		Title:        "Syrian Arab Republic",
		Filename:     "syria.txt",
		ContentHash:  "hash-" + id,
		SectionCount: 1,
		EntryCount:   2,
		CreatedAt:    created,
	}
}

func TestDB_SaveAndLoadAll(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Save(testMeta("r1", created), testReport()))

	stored, err := db.LoadAll()
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got := stored[0]
	assert.Equal(t, "r1", got.Meta.ID)
	assert.Equal(t, "syria.txt", got.Meta.Filename)
	assert.Equal(t, created, got.Meta.CreatedAt)
	assert.Equal(t, testReport(), got.Report)
}

func TestDB_SaveReplacesSameID(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Save(testMeta("r1", created), testReport()))

	updated := testMeta("r1", created)
	updated.Title = "Renamed"
	require.NoError(t, db.Save(updated, testReport()))

	stored, err := db.LoadAll()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Renamed", stored[0].Meta.Title)
}

func TestDB_LoadAllOldestFirst(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Save(testMeta("newer", base.Add(time.Hour)), testReport()))
	require.NoError(t, db.Save(testMeta("older", base), testReport()))

	stored, err := db.LoadAll()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "older", stored[0].Meta.ID)
	assert.Equal(t, "newer", stored[1].Meta.ID)
}

func TestDB_Delete(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Save(testMeta("r1", created), testReport()))
	require.NoError(t, db.Delete("r1"))

	stored, err := db.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Deleting a missing row is not an error.
	require.NoError(t, db.Delete("ghost"))
}
