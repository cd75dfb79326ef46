package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/notemaster/pkg/core"
	"github.com/aretw0/notemaster/pkg/exchange"
)

// noteSummary is the list_notes entry. The content is cut to a preview.
type noteSummary struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Preview   string        `json:"preview"`
	Tags      []string      `json:"tags"`
	Priority  core.Priority `json:"priority"`
	UpdatedAt string        `json:"updatedAt"`
}

type tools struct {
	store *core.Store
}

// RegisterTools adds every note tool to s.
func RegisterTools(s *server.MCPServer, store *core.Store) {
	t := &tools{store: store}

	s.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("Lists notes, optionally filtered by tag, searched and sorted."),
		mcp.WithString("tag", mcp.Description("Only notes carrying this tag. Omit or 'all' for every note.")),
		mcp.WithString("search", mcp.Description("Case-insensitive text matched against title, content and tags.")),
		mcp.WithString("sort", mcp.Enum("updated", "created", "title"), mcp.DefaultString("updated"),
			mcp.Description("Ordering of the result.")),
	), t.listNotes)

	s.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Returns one note with its full content."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
	), t.getNote)

	s.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Creates a note at the top of the collection and returns it."),
		mcp.WithString("title", mcp.Description("Title. Blank becomes 'Untitled Note'.")),
		mcp.WithString("content", mcp.Description("Note body (Markdown).")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags.")),
		mcp.WithString("priority", mcp.Enum("low", "medium", "high"), mcp.Description("Defaults to medium.")),
	), t.createNote)

	s.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Changes the given fields of a note. Omitted fields keep their value."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("content", mcp.Description("New content.")),
		mcp.WithString("tags", mcp.Description("New comma-separated tags; replaces the old list.")),
		mcp.WithString("priority", mcp.Enum("low", "medium", "high"), mcp.Description("New priority.")),
	), t.updateNote)

	s.AddTool(mcp.NewTool("duplicate_note",
		mcp.WithDescription("Copies a note under a new id with ' (Copy)' appended to the title."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
	), t.duplicateNote)

	s.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Permanently deletes a note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
	), t.deleteNote)

	s.AddTool(mcp.NewTool("format_note",
		mcp.WithDescription("Wraps a range of a note's content in Markdown formatting."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
		mcp.WithString("format", mcp.Required(),
			mcp.Enum("bold", "italic", "underline", "code", "list", "quote")),
		mcp.WithNumber("start", mcp.Description("First character of the range. Defaults to the end of the content.")),
		mcp.WithNumber("end", mcp.Description("Character after the range. Defaults to start.")),
	), t.formatNote)

	s.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("Lists every tag in first-seen order."),
	), t.listTags)

	s.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Returns note, word and tag counts and notes created today."),
	), t.getStats)

	s.AddTool(mcp.NewTool("export_note",
		mcp.WithDescription("Renders a note as plain text, Markdown or a printable HTML page."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The note id.")),
		mcp.WithString("format", mcp.Enum("txt", "md", "html"), mcp.DefaultString("md")),
	), t.exportNote)
}

func (t *tools) listNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments
	q := core.DefaultQuery()
	if tag, ok := stringArg(args, "tag"); ok && tag != "" {
		q.Filter = tag
	}
	q.Search, _ = stringArg(args, "search")
	if sort, ok := stringArg(args, "sort"); ok {
		q.Sort = core.ParseSortKey(sort)
	}

	notes := core.Apply(t.store.Notes(), q)
	out := make([]noteSummary, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteSummary{
			ID:        n.ID,
			Title:     n.Title,
			Preview:   core.Preview(n.Content, 100),
			Tags:      n.Tags,
			Priority:  n.Priority,
			UpdatedAt: n.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return jsonResult(out)
}

// lookup resolves the id argument or returns a tool error result.
func (t *tools) lookup(request mcp.CallToolRequest) (core.Note, *mcp.CallToolResult) {
	id, err := noteID(request.Params.Arguments, "id")
	if err != nil {
		return core.Note{}, mcp.NewToolResultError(err.Error())
	}
	n, ok := t.store.Get(id)
	if !ok {
		return core.Note{}, mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", id))
	}
	return n, nil
}

func (t *tools) getNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(n)
}

func (t *tools) createNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := t.store.Create(ctx)
	n := *c.Note
	args := request.Params.Arguments
	if len(args) > 0 {
		in := core.InputFrom(n)
		applyArgs(args, &in)
		saved, ok := t.store.Save(ctx, n.ID, in)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Note %d was deleted before it could be saved.", n.ID)), nil
		}
		n = *saved.Note
	}
	return jsonResult(n)
}

func (t *tools) updateNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	in := core.InputFrom(n)
	applyArgs(request.Params.Arguments, &in)
	c, ok := t.store.Save(ctx, n.ID, in)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", n.ID)), nil
	}
	return jsonResult(c.Note)
}

func applyArgs(args map[string]any, in *core.Input) {
	if v, ok := stringArg(args, "title"); ok {
		in.Title = v
	}
	if v, ok := stringArg(args, "content"); ok {
		in.Content = v
	}
	if v, ok := stringArg(args, "tags"); ok {
		in.Tags = v
	}
	if v, ok := stringArg(args, "priority"); ok {
		in.Priority = v
	}
}

func (t *tools) duplicateNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	c, ok := t.store.Duplicate(ctx, n.ID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", n.ID)), nil
	}
	return jsonResult(c.Note)
}

func (t *tools) deleteNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	t.store.Delete(ctx, n.ID)
	return mcp.NewToolResultText(fmt.Sprintf("Note %d deleted.", n.ID)), nil
}

func (t *tools) formatNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	args := request.Params.Arguments
	name, _ := stringArg(args, "format")
	f := core.Formatting(strings.ToLower(name))
	if f.Wrap("") == "" {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown format %q.", name)), nil
	}

	length := core.CountCharacters(n.Content)
	start := intArg(args, "start", length)
	end := intArg(args, "end", start)
	content, caret := core.ApplyFormatting(n.Content, start, end, f)

	in := core.InputFrom(n)
	in.Content = content
	c, _ := t.store.Save(ctx, n.ID, in)
	return jsonResult(map[string]any{"note": c.Note, "caret": caret})
}

func (t *tools) listTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.store.Tags())
}

func (t *tools) getStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.store.Stats())
}

func (t *tools) exportNote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, errResult := t.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	name, ok := stringArg(request.Params.Arguments, "format")
	if !ok {
		name = string(exchange.FormatMarkdown)
	}
	f, err := exchange.ParseFormat(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	file, err := exchange.Export(n, f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export note: %v", err)), nil
	}
	return mcp.NewToolResultText(string(file.Content)), nil
}
