package timetable

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Input errors surfaced to the request boundary. Everything else coming out
// of the pipeline is treated as an internal failure.
var (
	ErrEmptyInput = errors.New("no HTML provided")
	ErrNoEvents   = errors.New("no events found")
)

// Control characters that crash or confuse the HTML parser when the page
// source has been copy-pasted out of a browser. Tab, LF and CR are kept.
var controlCharsRe = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F]")

// NewDocument parses a raw timetable page into a traversable document.
// The blob is stripped of stray control characters first. An empty or
// whitespace-only blob yields ErrEmptyInput. Whether the document actually
// contains timetable content is not checked here.
func NewDocument(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyInput
	}
	cleaned := controlCharsRe.ReplaceAllString(html, "")
	return goquery.NewDocumentFromReader(strings.NewReader(cleaned))
}

// sanitizeField strips control characters from a free-text field and
// collapses all runs of whitespace to single spaces.
func sanitizeField(s string) string {
	s = controlCharsRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
