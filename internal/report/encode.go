package report

import (
	"fmt"
	"io"
	"strings"
)

// EncodeText writes the canonical fact-sheet text form of the report:
// a bare title line, "N. Title" headers, "Label: Value" fields, and
// "- item" bullets indented two spaces per nesting level. Parsing the
// output yields a structurally identical report.
func EncodeText(w io.Writer, r *Report) error {
	if r.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", r.Title); err != nil {
			return err
		}
	}
	for i, s := range r.Sections {
		if i > 0 || r.Title != "" {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d. %s\n", s.Number, s.Title); err != nil {
			return err
		}
		if err := encodeEntries(w, s.Entries, 0); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the canonical text encoding as a string.
func (r *Report) Text() string {
	var sb strings.Builder
	_ = EncodeText(&sb, r) // strings.Builder never fails
	return sb.String()
}

func encodeEntries(w io.Writer, entries []Entry, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		switch e := e.(type) {
		case Field:
			if _, err := fmt.Fprintf(w, "%s%s: %s\n", indent, e.Name, e.Value); err != nil {
				return err
			}
		case ListField:
			itemIndent := indent
			if e.Name != "" {
				if _, err := fmt.Fprintf(w, "%s%s:\n", indent, e.Name); err != nil {
					return err
				}
				itemIndent = strings.Repeat("  ", depth+1)
			}
			for _, v := range e.Values {
				if _, err := fmt.Fprintf(w, "%s- %s\n", itemIndent, v); err != nil {
					return err
				}
			}
		case SubSection:
			if _, err := fmt.Fprintf(w, "%s%s:\n", indent, e.Name); err != nil {
				return err
			}
			if err := encodeEntries(w, e.Entries, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
