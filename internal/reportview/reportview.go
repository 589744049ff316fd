// Package reportview renders a snapshot of a graph's nodes as a static
// HTML page from rows that cmd/inspect collects through reactive.Hooks;
// it is not part of the core.
// It uses the standard library's html/template rather than a generated
// templating dependency; see DESIGN.md for why.
package reportview

import (
	"html/template"
	"io"
)

// Row is one node's snapshot at render time.
type Row struct {
	ID      uint64
	Kind    string
	Label   string
	Tag     string
	Version uint64
	Flags   string
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>reactive graph snapshot</title>
<style>
body { font-family: monospace; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #888; padding: 0.25rem 0.6rem; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
<h1>reactive graph snapshot</h1>
<table>
<tr><th>id</th><th>tag</th><th>kind</th><th>label</th><th>version</th><th>flags</th></tr>
{{range .}}<tr><td>{{.ID}}</td><td>{{.Tag}}</td><td>{{.Kind}}</td><td>{{.Label}}</td><td>{{.Version}}</td><td>{{.Flags}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// Render writes the HTML snapshot page for rows to w.
func Render(w io.Writer, rows []Row) error {
	return page.Execute(w, rows)
}
