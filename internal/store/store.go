// Package store answers point and keyword queries over a parsed report.
// All lookups are pure reads; the underlying report is immutable, so a
// Store may be shared across goroutines without locking.
package store

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
)

// NotFoundError reports a lookup miss on a section or field.
type NotFoundError struct {
	Kind string // "section" or "field"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// TypeMismatchError reports a scalar lookup that hit a list or nested
// block instead of a Field.
type TypeMismatchError struct {
	Label string
	Got   string // "list" or "subsection"
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("entry %q is a %s, not a scalar field", e.Label, e.Got)
}

// Store wraps a parsed report for read-only lookups.
type Store struct {
	rep *report.Report
}

// New creates a query store over a report.
func New(rep *report.Report) *Store {
	return &Store{rep: rep}
}

// Report returns the underlying report.
func (s *Store) Report() *report.Report {
	return s.rep
}

// Section resolves a section by reference: a numeric string matches the
// section number, anything else matches the title case-insensitively.
func (s *Store) Section(ref string) (*report.Section, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if sec := s.rep.SectionByNumber(n); sec != nil {
			return sec, nil
		}
		return nil, &NotFoundError{Kind: "section", Key: ref}
	}
	for _, sec := range s.rep.Sections {
		if strings.EqualFold(sec.Title, ref) {
			return sec, nil
		}
	}
	return nil, &NotFoundError{Kind: "section", Key: ref}
}

// Field returns the scalar value of the labeled field in the referenced
// section. The label matches case-insensitively against top-level
// entries of the section.
func (s *Store) Field(sectionRef, label string) (string, error) {
	sec, err := s.Section(sectionRef)
	if err != nil {
		return "", err
	}
	for _, e := range sec.Entries {
		if !strings.EqualFold(e.Label(), label) {
			continue
		}
		switch e := e.(type) {
		case report.Field:
			return e.Value, nil
		case report.ListField:
			return "", &TypeMismatchError{Label: e.Name, Got: "list"}
		case report.SubSection:
			return "", &TypeMismatchError{Label: e.Name, Got: "subsection"}
		}
	}
	return "", &NotFoundError{Kind: "field", Key: label}
}

// Match is one search hit: the owning section, the matched entry, and
// the label path leading to it.
type Match struct {
	Section *report.Section
	Entry   report.Entry
	Path    []string
}

// Search yields entries whose label or any value contains the keyword,
// case-insensitively, in document order. The sequence is lazy and
// restartable: ranging over it again starts a fresh scan.
func (s *Store) Search(keyword string) iter.Seq[Match] {
	needle := strings.ToLower(keyword)
	return func(yield func(Match) bool) {
		if needle == "" {
			return
		}
		for _, sec := range s.rep.Sections {
			for path, e := range sec.Walk() {
				if !entryMatches(e, needle) {
					continue
				}
				if !yield(Match{Section: sec, Entry: e, Path: path}) {
					return
				}
			}
		}
	}
}

func entryMatches(e report.Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Label()), needle) {
		return true
	}
	switch e := e.(type) {
	case report.Field:
		return strings.Contains(strings.ToLower(e.Value), needle)
	case report.ListField:
		for _, v := range e.Values {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	// SubSection values surface through their own child entries.
	return false
}
