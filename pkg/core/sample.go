package core

import (
	"fmt"
	"time"
)

// SampleNotes is the collection shown on first run.
func SampleNotes(now time.Time) []Note {
	day := 24 * time.Hour
	return []Note{
		{
			ID:        1,
			Title:     "🎉 Welcome to NoteMaster Pro!",
			Content:   welcomeContent,
			Tags:      []string{"welcome", "tutorial", "productivity", "features"},
			Priority:  PriorityHigh,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        2,
			Title:     "📋 Meeting Notes Template",
			Content:   fmt.Sprintf(meetingContent, now.Format("1/2/2006")),
			Tags:      []string{"template", "meetings", "work", "productivity"},
			Priority:  PriorityMedium,
			CreatedAt: now.Add(-day),
			UpdatedAt: now.Add(-day),
		},
		{
			ID:        3,
			Title:     "💡 Project Ideas & Brainstorming",
			Content:   ideasContent,
			Tags:      []string{"ideas", "brainstorming", "development", "future"},
			Priority:  PriorityLow,
			CreatedAt: now.Add(-2 * day),
			UpdatedAt: now.Add(-2 * day),
		},
	}
}

const welcomeContent = `# Welcome to the most advanced note-taking experience!

## ✨ Features:
- **📝 Rich Text Formatting** with markdown-like syntax
- **🏷️ Priority Levels** to organize your tasks (🟢 Low, 🟡 Medium, 🔴 High)
- **🔍 Advanced Search** through titles, content, and tags
- **📤 Export Options** - TXT, Markdown, and Print
- **🌙 Theme Toggle** between dark and light modes
- **⚡ Auto-save** with customizable intervals
- **📥 Import/Export** your notes as JSON
- **📊 Word Count** and character tracking

## 🚀 Pro Tips:
1. **Tags**: Use tags to organize notes by project or topic
2. **Priorities**: Set priorities to focus on important notes first
3. **Auto-save**: Your work is automatically saved as you type
4. **Export**: Export individual notes or your entire collection

## ⌨️ Keyboard Shortcuts:
- **Ctrl + N**: Create new note
- **Ctrl + S**: Save current note
- **Ctrl + D**: Duplicate note
- **Ctrl + /**: Focus search box

Start creating notes and boost your productivity! 🚀`

const meetingContent = `# Meeting: [Meeting Title]
**Date:** %s
**Attendees:** [Names]
**Duration:** [Time]
**Location/Platform:** [Physical location or video platform]

## 📋 Agenda:
- [ ] Welcome & introductions
- [ ] Review previous action items
- [ ] Main discussion topics
- [ ] Decision making
- [ ] Next steps & action items

## 💡 Discussion Points:
> Key decisions, important discussions, and insights...

## ✅ Action Items:
- [ ] **Task 1** - Assigned to: [Name] - Due: [Date]
- [ ] **Task 2** - Assigned to: [Name] - Due: [Date]

## 📅 Next Meeting:
**Date:** [Next meeting date]
**Topics:** [What to discuss next time]

## 📝 Additional Notes:
[Any other important information or follow-ups]`

const ideasContent = `# Creative Project Ideas 🎨



*"The best ideas come when you're not trying to have them"* ✨`
