package crawler

// Deal is a titled link scraped from the deals page
type Deal struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Deals maps deal titles to URLs, preserving the order titles were first seen.
// Adding a title that is already present keeps the original URL.
type Deals struct {
	titles []string
	urls   map[string]string
}

// NewDeals creates an empty deal mapping
func NewDeals() *Deals {
	return &Deals{urls: make(map[string]string)}
}

// Add inserts a deal unless its title is already present, reporting whether it was inserted
func (d *Deals) Add(title, url string) bool {
	if _, exists := d.urls[title]; exists {
		return false
	}
	d.titles = append(d.titles, title)
	d.urls[title] = url
	return true
}

// URL returns the URL stored for title
func (d *Deals) URL(title string) (string, bool) {
	url, ok := d.urls[title]
	return url, ok
}

// Len returns the number of deals
func (d *Deals) Len() int {
	return len(d.titles)
}

// Titles returns the titles in insertion order
func (d *Deals) Titles() []string {
	return append([]string(nil), d.titles...)
}

// All returns the deals in insertion order
func (d *Deals) All() []Deal {
	deals := make([]Deal, 0, len(d.titles))
	for _, title := range d.titles {
		deals = append(deals, Deal{Title: title, URL: d.urls[title]})
	}
	return deals
}

// Crawler defines the contract for a deals page crawler
type Crawler interface {
	// FetchDeals retrieves the current deals
	FetchDeals() (*Deals, error)

	// GetName returns the crawler's name for logging and identification
	GetName() string
}
