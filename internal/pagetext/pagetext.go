// Package pagetext decodes input files into per-page text lines for
// the extractor. It is the stand-in for the document decoder that an
// embedding application would normally provide.
package pagetext

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/ingest"
)

// Document is decoded page text ready for extraction. It implements
// the analyzer's PageSource.
type Document struct {
	pages [][]string
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Lines returns the cleaned text lines of the given 1-based page.
func (d *Document) Lines(pageNumber int) ([]string, error) {
	if pageNumber < 1 || pageNumber > len(d.pages) {
		return nil, fmt.Errorf("page %d out of range (1..%d)", pageNumber, len(d.pages))
	}
	return d.pages[pageNumber-1], nil
}

// LoadPlainText reads a text file where form feeds separate pages.
// Lines are cleaned and blank lines dropped; a file without form feeds
// is a single page.
func LoadPlainText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return FromText(string(data)), nil
}

// FromText splits raw text into a Document, form feeds separating
// pages.
func FromText(text string) *Document {
	var pages [][]string
	for _, pageText := range strings.Split(text, "\f") {
		pages = append(pages, cleanLines(pageText))
	}
	return &Document{pages: pages}
}

// LoadHTML reads an HTML file and extracts its text content as one
// page, text nodes of block-level elements becoming separate lines.
func LoadHTML(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", path, err)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && blockElement(n.Data) {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockElement(n.Data) {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return &Document{pages: [][]string{cleanLines(buf.String())}}, nil
}

func blockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "table", "section", "article":
		return true
	}
	return false
}

func cleanLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = ingest.CleanLine(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
