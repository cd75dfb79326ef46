package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notemaster/pkg/core"
)

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.Local)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Today"},
		{3 * time.Hour, "Today"},
		{30 * time.Hour, "Yesterday"},
		{3 * 24 * time.Hour, "2d ago"},
		{7 * 24 * time.Hour, "6d ago"},
		{10 * 24 * time.Hour, "2w ago"},
		{29 * 24 * time.Hour, "5w ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, core.RelativeDate(now.Add(-tc.ago), now), tc.ago.String())
	}

	old := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)
	assert.Equal(t, "1/5/2024", core.RelativeDate(old, now))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, core.PriorityHigh, core.ParsePriority(" High "))
	assert.Equal(t, core.PriorityMedium, core.ParsePriority(""))
	assert.Equal(t, core.PriorityMedium, core.ParsePriority("critical"))
	assert.Equal(t, core.PriorityHigh, core.PriorityMedium.Next())
	assert.Equal(t, core.PriorityLow, core.PriorityHigh.Next())

	assert.Equal(t, "🟢", core.PriorityIcon(core.PriorityLow))
	assert.Equal(t, "🟡", core.PriorityIcon(core.PriorityMedium))
	assert.Equal(t, "🔴", core.PriorityIcon(core.PriorityHigh))
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, core.SortTitle, core.ParseSortKey("TITLE"))
	assert.Equal(t, core.SortUpdated, core.ParseSortKey("size"))
	assert.Equal(t, core.SortCreated, core.SortUpdated.Next())
	assert.Equal(t, core.SortUpdated, core.SortTitle.Next())
}

func TestApplyFormatting(t *testing.T) {
	cases := []struct {
		format     core.Formatting
		start, end int
		want       string
		caret      int
	}{
		{core.FormatBold, 6, 11, "hello **world**", 15},
		{core.FormatItalic, 0, 5, "*hello* world", 7},
		{core.FormatCode, 11, 11, "hello world``", 13},
		{core.FormatQuote, 0, 0, "> hello world", 2},
		{core.FormatUnderline, 0, 5, "<u>hello</u> world", 12},
		{core.FormatList, 5, 5, "hello\n- ", 8},
	}
	for _, tc := range cases {
		content := "hello world"
		if tc.format == core.FormatList {
			content = "hello"
		}
		got, caret := core.ApplyFormatting(content, tc.start, tc.end, tc.format)
		assert.Equal(t, tc.want, got, string(tc.format))
		assert.Equal(t, tc.caret, caret, string(tc.format))
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", core.Preview("abc", 5))
	assert.Equal(t, "ab...", core.Preview("abcdef", 2))
}

func TestInputFrom(t *testing.T) {
	in := core.InputFrom(core.Note{Title: "t", Content: "c", Tags: []string{"a", "b"}, Priority: core.PriorityLow})
	assert.Equal(t, core.Input{Title: "t", Content: "c", Tags: "a, b", Priority: "low"}, in)
	assert.Equal(t, []string{"a", "b"}, core.ParseTags(in.Tags))
}
