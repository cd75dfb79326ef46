package core

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query is the view state applied to the collection.
type Query struct {
	Filter string  `json:"filter"`
	Search string  `json:"search"`
	Sort   SortKey `json:"sort"`
}

// DefaultQuery shows every note, most recently updated first.
func DefaultQuery() Query {
	return Query{Filter: FilterAll, Sort: SortUpdated}
}

// Match reports whether n passes the filter and search of q.
func (q Query) Match(n Note) bool {
	if q.Filter != "" && q.Filter != FilterAll && !n.HasTag(q.Filter) {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	if strings.Contains(strings.ToLower(n.Title), term) || strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// Apply filters, searches and sorts notes. The input is left untouched.
func Apply(notes []Note, q Query) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if q.Match(n) {
			out = append(out, n)
		}
	}

	switch ParseSortKey(string(q.Sort)) {
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortTitle:
		// Collators keep internal buffers, one per call.
		c := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	}
	return out
}

// AllTags returns the distinct tags of notes in first-seen order.
func AllTags(notes []Note) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, n := range notes {
		for _, t := range n.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// CountWords counts whitespace separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters counts runes.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// Stats summarises the collection.
type Stats struct {
	TotalNotes   int `json:"totalNotes"`
	TotalWords   int `json:"totalWords"`
	TotalTags    int `json:"totalTags"`
	CreatedToday int `json:"createdToday"`
}

// ComputeStats derives Stats from notes as of now. "Today" is the local
// calendar day of now.
func ComputeStats(notes []Note, now time.Time) Stats {
	s := Stats{TotalNotes: len(notes), TotalTags: len(AllTags(notes))}
	y, m, d := now.Date()
	for _, n := range notes {
		s.TotalWords += CountWords(n.Content)
		cy, cm, cd := n.CreatedAt.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			s.CreatedToday++
		}
	}
	return s
}
