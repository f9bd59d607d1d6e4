package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/hkanaan/factsheet/internal/report"
)

// DOCXParser handles .docx fact sheets. Heading-styled paragraphs carry
// the section headers; other paragraphs go through the plain-text line
// rules, with literal indentation in the paragraph text mapped to bullet
// depth.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*report.Report, error) {
	// go-docx needs a ReadSeeker+size, so buffer the document.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var events []lineEvent
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		raw := paragraphText(para)
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if isHeadingStyle(para) && headerRe.MatchString(strings.TrimSpace(raw)) {
			events = append(events, classifyLine(strings.TrimSpace(raw), 0))
			continue
		}
		depth, _ := splitIndent(raw)
		events = append(events, classifyLine(raw, depth))
	}

	return buildReport(sliceEvents(events), strings.TrimSuffix(filename, ".docx"))
}

func isHeadingStyle(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(para.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

// paragraphText concatenates the run text of a paragraph, preserving
// leading whitespace (it encodes bullet depth).
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimRight(buf.String(), " \t")
}
