package render

import (
	"html/template"
	"io"
	"os"

	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/pkg/errors"

	"github.com/pkg/browser"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<HTML>
<HEAD>
<TITLE>SlickDealer</TITLE>
</HEAD>
<BODY>
<ol>
{{- range .}}
	<li><a href="{{.URL}}" target="_blank">{{.Title}}</a></li>
	<br>
{{- end}}
</ol>
</BODY>
</HTML>
`))

// Listing renders one list entry per deal with a non-empty title
func Listing(w io.Writer, deals *crawler.Deals) error {
	var entries []crawler.Deal
	if deals != nil {
		for _, deal := range deals.All() {
			if deal.Title == "" {
				continue
			}
			deal.Title = helpers.NormalizeTitle(deal.Title)
			entries = append(entries, deal)
		}
	}
	return listingTemplate.Execute(w, entries)
}

// WriteListing writes the listing to path, replacing any previous file
func WriteListing(path string, deals *crawler.Deals) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewOutput(path, "failed to create listing file", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = errors.NewOutput(path, "failed to close listing file", closeErr)
		}
	}()

	if err := Listing(f, deals); err != nil {
		return errors.NewOutput(path, "failed to render listing", err)
	}
	return nil
}

// Opener opens a file for the user
type Opener func(path string) error

// OpenInBrowser opens the file in the default browser
func OpenInBrowser(path string) error {
	return browser.OpenFile(path)
}
