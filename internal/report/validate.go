package report

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a parsed report: at least
// one section, unique positive section numbers, non-empty section titles.
func (r *Report) Validate() error {
	if len(r.Sections) == 0 {
		return fmt.Errorf("report has no sections")
	}
	seen := make(map[int]bool, len(r.Sections))
	for i, s := range r.Sections {
		if s.Number <= 0 {
			return fmt.Errorf("section %d: number must be positive, got %d", i+1, s.Number)
		}
		if seen[s.Number] {
			return fmt.Errorf("duplicate section number %d", s.Number)
		}
		seen[s.Number] = true
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("section %d has an empty title", s.Number)
		}
		if err := validateEntries(s.Entries); err != nil {
			return fmt.Errorf("section %d: %w", s.Number, err)
		}
	}
	return nil
}

func validateEntries(entries []Entry) error {
	for _, e := range entries {
		sub, ok := e.(SubSection)
		if !ok {
			continue
		}
		if sub.Name == "" {
			return fmt.Errorf("subsection with empty label")
		}
		if err := validateEntries(sub.Entries); err != nil {
			return fmt.Errorf("subsection %q: %w", sub.Name, err)
		}
	}
	return nil
}
