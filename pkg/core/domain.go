// Package core holds the note domain: the Note entity, the in-memory Store,
// the pure query functions and the persistence port the adapters implement.
package core

import (
	"strings"
	"time"
)

// Storage keys. They are shared with the exchange bundle so a collection
// written by one backend can be read by another.
const (
	KeyNotes    = "notemaster-notes"
	KeySettings = "notemaster-settings"
	KeyTheme    = "notemaster-theme"
)

// DefaultTitle replaces an empty title at save time.
const DefaultTitle = "Untitled Note"

// FilterAll is the filter value that lets every note through.
const FilterAll = "all"

// Priority is the importance level of a note.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the levels in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ParsePriority maps free text to a Priority. Anything unknown is medium.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}

// Note is the unit of user content.
type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a copy that shares no slices with n.
func (n Note) Clone() Note {
	c := n
	c.Tags = append(make([]string, 0, len(n.Tags)), n.Tags...)
	return c
}

// HasTag reports whether n carries exactly tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SortKey selects the ordering of the visible list.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortCreated SortKey = "created"
	SortTitle   SortKey = "title"
)

// SortKeys lists the supported orderings in display order.
var SortKeys = []SortKey{SortUpdated, SortCreated, SortTitle}

// ParseSortKey returns the matching key, falling back to SortUpdated.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortUpdated, SortCreated, SortTitle:
		return k
	}
	return SortUpdated
}

// Next cycles through SortKeys.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortUpdated
}

// Input is the raw editor state handed to Store.Save.
// Tags is the comma separated text the user typed.
type Input struct {
	Title    string
	Content  string
	Tags     string
	Priority string
}

// InputFrom renders n back into editor form.
func InputFrom(n Note) Input {
	return Input{
		Title:    n.Title,
		Content:  n.Content,
		Tags:     strings.Join(n.Tags, ", "),
		Priority: string(n.Priority),
	}
}

// ParseTags splits comma separated input, trimming each entry and dropping
// empty ones. Order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
