package normalize

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var htmlTagRe = regexp.MustCompile(`(?i)<\s*(?:html|body|table|tbody|tr|td|th|div|span|p|br|li)\b`)

// LooksLikeHTML reports whether s appears to be an HTML clipboard fragment
// rather than plain text.
func LooksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// FromHTML flattens an HTML clipboard fragment into plain text. Table cells
// are separated by tabs and rows by newlines, which matches what the
// dashboard produces when copied as plain text. Scripts and styles are
// skipped. The result is not normalized.
func FromHTML(input []byte) string {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return string(input)
	}
	var b strings.Builder
	collectText(&b, node)
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "head", "button":
			return
		case "br":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "td", "th", "dt", "dd", "span":
			b.WriteString("\t")
		case "tr", "p", "div", "li", "h1", "h2", "h3", "h4", "table":
			b.WriteString("\n")
		}
	}
}
