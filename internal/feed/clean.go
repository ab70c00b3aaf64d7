package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cleanDescription strips markup from a forum post body. Scraped posts mix
// raw HTML with plain text; the classifiers want prose only. On parse
// failure the original text is returned unchanged.
func cleanDescription(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return collapseWhitespace(raw)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapseWhitespace(raw)
	}
	doc.Find("script, style, img, iframe").Remove()
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
