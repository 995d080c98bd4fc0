package markdown

import (
	"strings"

	"github.com/fwojciec/docmirror"
	"golang.org/x/net/html"
)

type renderFunc func(r *renderer, n *html.Node) (string, error)

// renderers maps lowercase tag names to their rendering rule.
var renderers map[string]renderFunc

// transparentTags have no formatting of their own; their children are
// rendered verbatim. tbody, thead and tfoot are synthesized by the HTML5
// parser around table rows.
var transparentTags = []string{"center", "nobr", "br", "tbody", "thead", "tfoot"}

func init() {
	renderers = map[string]renderFunc{
		"h2":         heading("## "),
		"h4":         heading("#### "),
		"p":          renderParagraph,
		"code":       inline("`"),
		"i":          inline("*"),
		"dl":         renderDefinitionList,
		"dt":         renderTerm,
		"dd":         renderDescription,
		"blockquote": renderBlockquote,
		"pre":        renderPre,
		"a":          renderAnchor,
		"ul":         renderList,
		"li":         renderListItem,
		"table":      renderTable,
		"tr":         renderRow,
		"td":         renderCell,
	}
	for _, tag := range transparentTags {
		renderers[tag] = renderTransparent
	}
}

func trim(s string) string {
	return strings.Trim(s, docmirror.Blank)
}

// collapseTrailingNewlines replaces a trailing run of newlines with one space.
func collapseTrailingNewlines(s string) string {
	if strings.HasSuffix(s, "\n") {
		return strings.TrimRight(s, "\n") + " "
	}
	return s
}

// trimmedChildren renders the children of n and trims the result.
func (r *renderer) trimmedChildren(n *html.Node) (string, error) {
	s, err := r.children(n)
	if err != nil {
		return "", err
	}
	return trim(s), nil
}

func renderText(n *html.Node) string {
	s := collapseTrailingNewlines(n.Data)
	if trim(s) == "" {
		return ""
	}
	return s
}

func renderTransparent(r *renderer, n *html.Node) (string, error) {
	return r.children(n)
}

func heading(prefix string) renderFunc {
	return func(r *renderer, n *html.Node) (string, error) {
		s, err := r.trimmedChildren(n)
		if err != nil || s == "" {
			return "", err
		}
		return prefix + s + "\n\n", nil
	}
}

// inline wraps non-empty content in mark on both sides.
func inline(mark string) renderFunc {
	return func(r *renderer, n *html.Node) (string, error) {
		s, err := r.trimmedChildren(n)
		if err != nil || s == "" {
			return "", err
		}
		return mark + s + mark, nil
	}
}

func renderParagraph(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil || s == "" {
		return "", err
	}
	return s + "\n\n", nil
}

func renderDefinitionList(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil || s == "" {
		return "", err
	}
	return "- " + s + " \n", nil
}

func renderTerm(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil {
		return "", err
	}
	return "**" + s + "**", nil
}

func renderDescription(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil {
		return "", err
	}
	return "\n\n    " + s + "\n", nil
}

func renderBlockquote(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil || s == "" {
		return "", err
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n") + "\n\n", nil
}

func renderPre(r *renderer, n *html.Node) (string, error) {
	s, err := r.trimmedChildren(n)
	if err != nil || s == "" {
		return "", err
	}
	return "```\n" + s + "\n```\n", nil
}

func renderAnchor(r *renderer, n *html.Node) (string, error) {
	s, err := r.children(n)
	if err != nil {
		return "", err
	}
	text := trim(collapseTrailingNewlines(s))

	href, ok := attr(n, "href")
	if ok {
		// An href that cannot be resolved is printed as found and never followed.
		if abs, err := docmirror.Absolutize(r.pageURL, href); err == nil {
			href = abs
		}
	}

	if text == "" {
		return "", nil
	}
	if ok {
		r.discover(href)
	}
	return "[" + text + "](" + href + ")", nil
}

func renderList(r *renderer, n *html.Node) (string, error) {
	r.depth++
	defer func() { r.depth-- }()

	s, err := r.children(n)
	if err != nil {
		return "", err
	}
	return s + "\n\n", nil
}

func renderListItem(r *renderer, n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s, err := r.render(c)
		if err != nil {
			return "", err
		}
		if s = trim(s); s != "" {
			b.WriteString("- " + s + " \n")
		}
	}
	return b.String(), nil
}

// renderTable prepends a header of empty cells and a centered alignment row
// sized from the first rendered row.
func renderTable(r *renderer, n *html.Node) (string, error) {
	rows, err := r.children(n)
	if err != nil || rows == "" {
		return "", err
	}

	first := rows
	if i := strings.IndexByte(rows, '\n'); i >= 0 {
		first = rows[:i]
	}
	cols := max(strings.Count(first, "|")-1, 0)

	return strings.Repeat("| - ", cols) + "|\n" +
		strings.Repeat("|:---:", cols) + "|\n" +
		rows, nil
}

func renderRow(r *renderer, n *html.Node) (string, error) {
	var b strings.Builder
	b.WriteString("|")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Whitespace and comments between cells are not cells.
		if c.Type == html.CommentNode || (c.Type == html.TextNode && trim(c.Data) == "") {
			continue
		}
		s, err := r.render(c)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.ReplaceAll(s, "\n", " "))
		b.WriteString("|")
	}

	s := trim(b.String())
	if s == "" {
		return "", nil
	}
	return s + "\n", nil
}

func renderCell(r *renderer, n *html.Node) (string, error) {
	return r.trimmedChildren(n)
}
