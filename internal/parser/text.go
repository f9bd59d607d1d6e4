package parser

import (
	"bufio"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
)

// TextParser handles plain text fact sheets: "N. Title" section headers,
// "Label: Value" fields, and indented/bulleted list items.
type TextParser struct{}

var headerRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

type eventKind int

const (
	eventHeader  eventKind = iota // "N. Title" at depth 0
	eventLabeled                  // "Label: Value" or "Label:"
	eventItem                     // bare list item
)

// lineEvent is one classified input line. Blank lines are skipped.
type lineEvent struct {
	kind   eventKind
	line   int // 1-based source line
	depth  int
	number int    // section number (header only)
	label  string // labeled only
	value  string // field value or item text
}

func (p *TextParser) Parse(r io.Reader, filename string) (*report.Report, error) {
	return buildReport(scanEvents(r), strings.TrimSuffix(filename, ".txt"))
}

// scanEvents lazily classifies input lines into parse events. The
// sequence is consumed once per parse; reparsing requires a fresh reader.
func scanEvents(r io.Reader) iter.Seq2[lineEvent, error] {
	return func(yield func(lineEvent, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			raw := scanner.Text()
			if strings.TrimSpace(raw) == "" {
				continue
			}

			depth, text := splitIndent(raw)

			if depth == 0 {
				if m := headerRe.FindStringSubmatch(text); m != nil {
					n, err := strconv.Atoi(m[1])
					if err == nil && n > 0 {
						if !yield(lineEvent{kind: eventHeader, line: lineNo, number: n, value: strings.TrimSpace(m[2])}, nil) {
							return
						}
						continue
					}
				}
			}

			if label, value, ok := splitLabel(text); ok {
				if !yield(lineEvent{kind: eventLabeled, line: lineNo, depth: depth, label: label, value: value}, nil) {
					return
				}
				continue
			}

			if !yield(lineEvent{kind: eventItem, line: lineNo, depth: depth, value: text}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(lineEvent{}, err)
		}
	}
}

// splitIndent computes the bullet depth of a line and strips the
// indentation and any leading bullet marker. Two spaces or one tab count
// as one level; a bullet marker after the indent adds nothing (the
// indent already places the item).
func splitIndent(line string) (int, string) {
	width := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += 2
		default:
			goto done
		}
		i++
	}
done:
	text := line[i:]
	for _, marker := range []string{"- ", "* ", "• ", "– "} {
		if strings.HasPrefix(text, marker) {
			text = strings.TrimSpace(text[len(marker):])
			break
		}
	}
	return width / 2, strings.TrimSpace(text)
}

// splitLabel splits "Label: Value" lines. The label must be non-empty
// and contain no colon; the value may be empty ("Label:" opens a list or
// nested block).
func splitLabel(text string) (label, value string, ok bool) {
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.TrimSpace(text[:idx])
	rest := text[idx+1:]
	if label == "" {
		return "", "", false
	}
	// "10:30" or URLs are values, not labels.
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return "", "", false
	}
	return label, strings.TrimSpace(rest), true
}

// container accumulates entries for a section or an open labeled block.
// Bare items collect in pending until a labeled entry arrives or the
// container closes.
type container struct {
	label   string // "" for the section itself
	entries []report.Entry
	pending []string
}

func (c *container) flushPending() {
	if len(c.pending) > 0 {
		c.entries = append(c.entries, report.ListField{Values: c.pending})
		c.pending = nil
	}
}

// resolve turns a closed labeled container into its final entry shape:
// only bare items -> ListField, nested entries -> SubSection, nothing ->
// empty Field.
func (c *container) resolve() report.Entry {
	if len(c.entries) == 0 {
		if len(c.pending) > 0 {
			return report.ListField{Name: c.label, Values: c.pending}
		}
		return report.Field{Name: c.label}
	}
	c.flushPending()
	return report.SubSection{Name: c.label, Entries: c.entries}
}

// buildReport materializes the event stream into a Report.
func buildReport(events iter.Seq2[lineEvent, error], fallbackTitle string) (*report.Report, error) {
	rep := &report.Report{Title: fallbackTitle}

	var section *container
	var sectionNumber int
	var sectionTitle string
	var stack []*container // open labeled blocks; stack[i] sits at depth i
	titleSeen := false

	closeTo := func(depth int) {
		for len(stack) > depth {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			entry := top.resolve()
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.flushPending()
				parent.entries = append(parent.entries, entry)
			} else {
				section.flushPending()
				section.entries = append(section.entries, entry)
			}
		}
	}

	closeSection := func() {
		if section == nil {
			return
		}
		closeTo(0)
		section.flushPending()
		rep.Sections = append(rep.Sections, &report.Section{
			Number:  sectionNumber,
			Title:   sectionTitle,
			Entries: section.entries,
		})
		section = nil
	}

	for ev, err := range events {
		if err != nil {
			return nil, err
		}

		if ev.kind == eventHeader {
			closeSection()
			section = &container{}
			sectionNumber = ev.number
			sectionTitle = ev.value
			continue
		}

		if section == nil {
			// A single unlabeled depth-0 line before the first header is
			// the document title.
			if ev.kind == eventItem && ev.depth == 0 && !titleSeen {
				rep.Title = ev.value
				titleSeen = true
				continue
			}
			return nil, &ParseError{Line: ev.line, Msg: "content before first section header"}
		}

		if ev.depth > len(stack) {
			return nil, &ParseError{Line: ev.line, Msg: "indented deeper than any open entry"}
		}
		closeTo(ev.depth)

		parent := section
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}

		switch ev.kind {
		case eventLabeled:
			if ev.value == "" {
				// Open block: shape decided by what nests beneath it.
				stack = append(stack, &container{label: ev.label})
			} else {
				parent.flushPending()
				parent.entries = append(parent.entries, report.Field{Name: ev.label, Value: ev.value})
			}
		case eventItem:
			parent.pending = append(parent.pending, ev.value)
		}
	}

	closeSection()

	if len(rep.Sections) == 0 {
		return nil, &ParseError{Msg: "document contains no section headers"}
	}
	if err := rep.Validate(); err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	return rep, nil
}
