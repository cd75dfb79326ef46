// Package exchange converts notes to and from files: plain text, Markdown,
// a printable HTML page and the JSON backup bundle.
package exchange

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/notemaster/pkg/core"
)

// Errors returned by the gateway.
var (
	// ErrUnreadable means the input is not valid JSON.
	ErrUnreadable = errors.New("error reading file")
	// ErrInvalidFormat means the input parsed but is not a notes bundle.
	ErrInvalidFormat = errors.New("invalid file format")
	// ErrUnknownFormat is returned for export formats other than txt, md and html.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format is a single-note export format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the format names and a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "print":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// File is an export ready to be written somewhere.
type File struct {
	Name     string
	MimeType string
	Content  []byte
}

// Export renders n in format f.
func Export(n core.Note, f Format) (File, error) {
	base := SanitizeFilename(n.Title)
	switch f {
	case FormatText:
		return File{Name: base + ".txt", MimeType: "text/plain", Content: []byte(PlainText(n))}, nil
	case FormatMarkdown:
		return File{Name: base + ".md", MimeType: "text/markdown", Content: []byte(Markdown(n))}, nil
	case FormatHTML:
		page, err := Print(n)
		if err != nil {
			return File{}, err
		}
		return File{Name: base + ".html", MimeType: "text/html", Content: []byte(page)}, nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// PlainText is the title, a blank line and the content.
func PlainText(n core.Note) string {
	return n.Title + "\n\n" + n.Content
}

// Markdown is a heading, the content and a metadata footer.
func Markdown(n core.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n---\n", n.Title, n.Content)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(n.Tags, ", "))
	fmt.Fprintf(&b, "Priority: %s\n", n.Priority)
	fmt.Fprintf(&b, "Created: %s", core.ShortDate(n.CreatedAt))
	return b.String()
}

// SanitizeFilename replaces every character outside [A-Za-z0-9] with an
// underscore and lower-cases the result.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}
