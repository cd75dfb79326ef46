package exchange

import (
	"html/template"
	"strings"

	"github.com/aretw0/notemaster/pkg/core"
)

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Inter', Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 40px; line-height: 1.6; color: #333; }
h1 { color: #2d3436; border-bottom: 3px solid #667eea; padding-bottom: 15px; margin-bottom: 20px; }
.meta { color: #636e72; font-size: 0.9em; margin-bottom: 30px; background: #f8f9fa; padding: 15px; border-radius: 8px; border-left: 4px solid #667eea; }
.content { line-height: 1.8; font-size: 16px; white-space: pre-wrap; }
.tags { margin-top: 20px; padding-top: 20px; border-top: 1px solid #ddd; }
.tag { display: inline-block; background: #667eea; color: white; padding: 4px 12px; border-radius: 15px; font-size: 0.8em; margin-right: 8px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">
<strong>Priority:</strong> {{.Icon}} {{.Priority}}<br>
<strong>Created:</strong> {{.Created}}<br>
<strong>Last Updated:</strong> {{.Updated}}
{{- if .Tags}}
<br><strong>Tags:</strong> <div class="tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
{{- end}}
</div>
<div class="content">{{.Content}}</div>
</body>
</html>
`))

// Print renders n as a standalone HTML page meant for a browser's print
// dialog. All note text is escaped.
func Print(n core.Note) (string, error) {
	var b strings.Builder
	err := printTemplate.Execute(&b, struct {
		Title, Icon, Priority, Created, Updated, Content string
		Tags                                             []string
	}{
		Title:    n.Title,
		Icon:     core.PriorityIcon(n.Priority),
		Priority: strings.ToUpper(string(n.Priority)),
		Created:  core.ShortDate(n.CreatedAt),
		Updated:  core.ShortDate(n.UpdatedAt),
		Content:  n.Content,
		Tags:     n.Tags,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
