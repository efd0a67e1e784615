// Package matcher finds deals whose titles contain wishlist terms or a search keyword.
// Matching is case-insensitive substring containment; results follow the deal order.
package matcher

import (
	"strings"

	"sjsage522/slickdealer/internal/crawler"
)

// Match is a deal whose title contains Term
type Match struct {
	Term  string `json:"term"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FindMatches emits one match for every (term, deal) pair where the lowercased title
// contains the term. A deal matched by several terms appears once per term.
func FindMatches(deals *crawler.Deals, terms []string) []Match {
	if deals == nil {
		return nil
	}

	all := deals.All()
	lowered := lowerTitles(all)

	var matches []Match
	for _, term := range terms {
		for i, deal := range all {
			if strings.Contains(lowered[i], term) {
				matches = append(matches, Match{Term: term, Title: deal.Title, URL: deal.URL})
			}
		}
	}
	return matches
}

// Search returns the deals whose lowercased title contains keyword. An empty
// result means no deal matched.
func Search(deals *crawler.Deals, keyword string) []Match {
	if deals == nil {
		return nil
	}

	all := deals.All()
	lowered := lowerTitles(all)

	// Any per-title hit is also a hit in the joined titles, so a miss here is final.
	if !strings.Contains(strings.Join(lowered, "\x00"), keyword) {
		return nil
	}

	var matches []Match
	for i, deal := range all {
		if strings.Contains(lowered[i], keyword) {
			matches = append(matches, Match{Term: keyword, Title: deal.Title, URL: deal.URL})
		}
	}
	return matches
}

func lowerTitles(deals []crawler.Deal) []string {
	lowered := make([]string, len(deals))
	for i, deal := range deals {
		lowered[i] = strings.ToLower(deal.Title)
	}
	return lowered
}
