package parser

import (
	"bytes"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles fact sheets written as Markdown: headings carry
// the "N. Title" section headers, list nesting carries entry depth.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*report.Report, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	title := strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown")
	titleSeen := false
	var events []lineEvent

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := string(node.Text(src))
			if headerRe.MatchString(heading) {
				events = append(events, classifyLine(heading, 0))
			} else if !titleSeen {
				// First non-numbered heading is the document title.
				title = heading
				titleSeen = true
			}
		case *ast.List:
			events = appendListEvents(events, node, src, 0)
		default:
			for _, line := range blockLines(n, src) {
				events = append(events, classifyLine(line, 0))
			}
		}
	}

	rep, err := buildReport(sliceEvents(events), title)
	if err != nil {
		return nil, err
	}
	if titleSeen {
		rep.Title = title
	}
	return rep, nil
}

// appendListEvents flattens a markdown list into depth-tagged events.
func appendListEvents(events []lineEvent, list *ast.List, src []byte, depth int) []lineEvent {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				events = appendListEvents(events, nested, src, depth+1)
				continue
			}
			for _, line := range blockLines(c, src) {
				events = append(events, classifyLine(line, depth))
			}
		}
	}
	return events
}

// classifyLine turns one stripped text line into a parse event, reusing
// the plain-text classification rules.
func classifyLine(line string, depth int) lineEvent {
	_, text := splitIndent(line)
	if depth == 0 {
		if m := headerRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return lineEvent{kind: eventHeader, number: n, value: strings.TrimSpace(m[2])}
			}
		}
	}
	if label, value, ok := splitLabel(text); ok {
		return lineEvent{kind: eventLabeled, depth: depth, label: label, value: value}
	}
	return lineEvent{kind: eventItem, depth: depth, value: text}
}

// blockLines extracts the text lines of a non-heading block node.
func blockLines(n ast.Node, src []byte) []string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	if buf.Len() == 0 {
		buf.WriteString(inlineText(n, src))
	}

	var out []string
	for _, line := range strings.Split(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// inlineText gets the text content of inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// sliceEvents adapts pre-collected events to the stream the report
// builder consumes.
func sliceEvents(events []lineEvent) iter.Seq2[lineEvent, error] {
	return func(yield func(lineEvent, error) bool) {
		for _, ev := range events {
			if !yield(ev, nil) {
				return
			}
		}
	}
}
