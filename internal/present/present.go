// Package present turns a move catalog into its display structure. Render
// is pure; the caller decides what to do with the rows.
package present

import (
	"html"
	"strings"

	"chessbook/internal/annotation"
)

type Row struct {
	// Move is the row label, the catalog key.
	Move string
	// Class is the rating-derived categorical style tag.
	Class annotation.Class
	// CommentLines is the comment split on line breaks, each line escaped
	// against markup injection. Empty for an absent comment.
	CommentLines []string
}

type List struct {
	Rows []Row
	// Focus is the move to receive keyboard focus after a re-render: the
	// first row, or empty when the catalog is.
	Focus string
}

// Render produces one row per catalog entry, in catalog order.
func Render(catalog *annotation.Catalog) List {
	var list List
	for _, move := range catalog.Moves() {
		a, _ := catalog.Get(move)
		list.Rows = append(list.Rows, Row{
			Move:         move,
			Class:        a.Class(),
			CommentLines: commentLines(a.Comment),
		})
	}
	if len(list.Rows) > 0 {
		list.Focus = list.Rows[0].Move
	}
	return list
}

// commentLines escapes untrusted comment text line by line. Comments come
// straight from user input and must never alter the surrounding markup.
func commentLines(comment string) []string {
	if comment == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(comment, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = html.EscapeString(line)
	}
	return lines
}

// HTML renders the list as the markup fragment the web UI swaps in
// wholesale. Row content is already escaped; move labels are escaped here.
func (l List) HTML() string {
	var b strings.Builder
	b.WriteString(`<ul class="move-list">`)
	for _, row := range l.Rows {
		b.WriteString(`<li class="move-` + string(row.Class) + `">`)
		b.WriteString(`<span class="move-label">` + html.EscapeString(row.Move) + `</span>`)
		if len(row.CommentLines) > 0 {
			b.WriteString(`<p class="move-comment">`)
			b.WriteString(strings.Join(row.CommentLines, "<br>"))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}
