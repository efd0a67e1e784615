package crawler

import (
	"io"

	"sjsage522/slickdealer/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Extract scans every anchor in document order and maps its title attribute to
// baseURL+href. Anchors without a title, or with an empty one, are skipped, and
// the first anchor carrying a given title wins.
func Extract(markup io.Reader, baseURL string) (*Deals, error) {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return nil, errors.NewParsing(baseURL, "failed to parse HTML", err)
	}
	return ExtractDocument(doc, baseURL), nil
}

// ExtractDocument runs the extraction over an already parsed document
func ExtractDocument(doc *goquery.Document, baseURL string) *Deals {
	deals := NewDeals()

	doc.Find("a[title]").Each(func(_ int, s *goquery.Selection) {
		title, _ := s.Attr("title")
		if title == "" {
			return
		}
		href, _ := s.Attr("href")
		deals.Add(title, baseURL+href)
	})

	return deals
}
