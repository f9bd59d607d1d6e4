package report

import "iter"

// Report is the root of a parsed country fact sheet.
type Report struct {
	Title    string     // Document title (country name or filename)
	Sections []*Section // Numbered sections in source order
}

// Section is one numbered top-level division of a report.
type Section struct {
	Number  int    // Leading numeral from the "N. Title" header
	Title   string // Header text after the numeral
	Entries []Entry
}

// Entry is one item nested under a section: a Field, a ListField or a
// SubSection. The interface is sealed so type switches over entries are
// exhaustive.
type Entry interface {
	// Label returns the entry's label. Anonymous list blocks return "".
	Label() string
	entry()
}

// Field is a single label/value pair.
type Field struct {
	Name  string
	Value string
}

// ListField is a label followed by unlabeled bullet values.
type ListField struct {
	Name   string
	Values []string
}

// SubSection is a label with further nested entries.
type SubSection struct {
	Name    string
	Entries []Entry
}

func (f Field) Label() string      { return f.Name }
func (l ListField) Label() string  { return l.Name }
func (s SubSection) Label() string { return s.Name }

func (Field) entry()      {}
func (ListField) entry()  {}
func (SubSection) entry() {}

// Walk yields every entry of the section in document order, descending
// into SubSections. The first value is the label path from the section
// down to (and including) the entry.
func (s *Section) Walk() iter.Seq2[[]string, Entry] {
	return func(yield func([]string, Entry) bool) {
		walkEntries(s.Entries, nil, yield)
	}
}

func walkEntries(entries []Entry, path []string, yield func([]string, Entry) bool) bool {
	for _, e := range entries {
		p := path
		if e.Label() != "" {
			p = append(append([]string{}, path...), e.Label())
		}
		if !yield(p, e) {
			return false
		}
		if sub, ok := e.(SubSection); ok {
			if !walkEntries(sub.Entries, p, yield) {
				return false
			}
		}
	}
	return true
}

// SectionByNumber returns the section with the given number, or nil.
func (r *Report) SectionByNumber(n int) *Section {
	for _, s := range r.Sections {
		if s.Number == n {
			return s
		}
	}
	return nil
}

// EntryCount returns the total number of entries across all sections,
// including nested ones.
func (r *Report) EntryCount() int {
	count := 0
	for _, s := range r.Sections {
		for range s.Walk() {
			count++
		}
	}
	return count
}
