package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PriorityIcon is the marker shown next to a note in lists.
func PriorityIcon(p Priority) string {
	switch p {
	case PriorityLow:
		return "🟢"
	case PriorityHigh:
		return "🔴"
	default:
		return "🟡"
	}
}

// RelativeDate renders t relative to now the way note lists show it:
// Today, Yesterday, "3d ago", "2w ago", then a plain date after a month.
func RelativeDate(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%dd ago", days-1)
	case days <= 30:
		return fmt.Sprintf("%dw ago", int(math.Ceil(float64(days)/7)))
	}
	return ShortDate(t)
}

// ShortDate formats t as M/D/YYYY in local time.
func ShortDate(t time.Time) string {
	return t.Local().Format("1/2/2006")
}

// Preview returns the first limit runes of content, with an ellipsis when cut.
func Preview(content string, limit int) string {
	r := []rune(content)
	if len(r) <= limit {
		return content
	}
	return string(r[:limit]) + "..."
}

// Formatting is an inline markup applied by the editor toolbar.
type Formatting string

const (
	FormatBold      Formatting = "bold"
	FormatItalic    Formatting = "italic"
	FormatUnderline Formatting = "underline"
	FormatCode      Formatting = "code"
	FormatList      Formatting = "list"
	FormatQuote     Formatting = "quote"
)

// Wrap decorates text with the markup of f. Unknown formats return "".
func (f Formatting) Wrap(text string) string {
	switch f {
	case FormatBold:
		return "**" + text + "**"
	case FormatItalic:
		return "*" + text + "*"
	case FormatUnderline:
		return "<u>" + text + "</u>"
	case FormatCode:
		return "`" + text + "`"
	case FormatList:
		return "\n- " + text
	case FormatQuote:
		return "> " + text
	}
	return ""
}

// ApplyFormatting replaces content[start:end] (rune offsets) with its
// formatted form and returns the new content and the caret position just
// after the inserted text.
func ApplyFormatting(content string, start, end int, f Formatting) (string, int) {
	r := []rune(content)
	start = clamp(start, 0, len(r))
	end = clamp(end, start, len(r))

	formatted := f.Wrap(string(r[start:end]))
	var b strings.Builder
	b.WriteString(string(r[:start]))
	b.WriteString(formatted)
	b.WriteString(string(r[end:]))
	return b.String(), start + len([]rune(formatted))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
