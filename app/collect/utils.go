package collect

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceRe = regexp.MustCompile(`\s+`)

// StripHTML extracts the text content of an HTML fragment, dropping script
// and style elements. Falls back to the raw input if parsing fails.
func StripHTML(html string) string {
	text := html

	if strings.Contains(html, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}

	text = spaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
