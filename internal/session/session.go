// Package session runs the interactive console menu over one fetched set of deals
// and the user's wishlist.
package session

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/internal/matcher"
	"sjsage522/slickdealer/internal/render"
	"sjsage522/slickdealer/internal/wishlist"
	"sjsage522/slickdealer/logger"
	"sjsage522/slickdealer/pkg/errors"
	"sjsage522/slickdealer/services/publisher"
)

var errInputClosed = stderrors.New("input closed")

// Options configures a Session. Open and Publisher are optional.
type Options struct {
	Deals       *crawler.Deals
	Wishlist    *wishlist.Wishlist
	In          io.Reader
	Out         io.Writer
	ListingPath string
	Open        render.Opener
	Publisher   publisher.Publisher
}

// Session owns the deals and wishlist for the lifetime of the menu loop
type Session struct {
	deals       *crawler.Deals
	wishlist    *wishlist.Wishlist
	in          *bufio.Scanner
	out         io.Writer
	listingPath string
	open        render.Opener
	publisher   publisher.Publisher
	log         *logger.Logger
}

// New creates a session
func New(opts Options) *Session {
	deals := opts.Deals
	if deals == nil {
		deals = crawler.NewDeals()
	}
	return &Session{
		deals:       deals,
		wishlist:    opts.Wishlist,
		in:          bufio.NewScanner(opts.In),
		out:         opts.Out,
		listingPath: opts.ListingPath,
		open:        opts.Open,
		publisher:   opts.Publisher,
		log:         logger.ForComponent("session"),
	}
}

// Run shows the main menu until the user quits or the input ends
func (s *Session) Run() error {
	err := s.mainLoop()
	if stderrors.Is(err, errInputClosed) {
		s.log.Debug().Msg("Input closed, ending session")
		return nil
	}
	return err
}

func (s *Session) mainLoop() error {
	for {
		s.displayMenu(mainMenu, "Slick Dealer - Main Menu")
		selection, err := s.prompt("Enter your selection---> ")
		if err != nil {
			return err
		}

		switch selection {
		case "q":
			fmt.Fprintln(s.out, "Thanks for using Slick Dealer.  Goodbye!")
			return nil
		case "1":
			s.viewDeals()
		case "2":
			s.searchWishlist()
		case "3":
			s.displayWishlist()
		case "4":
			if err := s.maintainWishlist(); err != nil {
				return err
			}
		case "5":
			if err := s.searchKeyword(); err != nil {
				return err
			}
		}
	}
}

// prompt writes message and returns the next input line, trimmed and lowercased
func (s *Session) prompt(message string) (string, error) {
	fmt.Fprint(s.out, message)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.ToLower(strings.TrimSpace(s.in.Text())), nil
}

func (s *Session) viewDeals() {
	if s.open == nil {
		fmt.Fprintf(s.out, "Deals listing written to %s\n", s.listingPath)
		return
	}
	fmt.Fprintln(s.out, "Opening in default browser...")
	if err := s.open(s.listingPath); err != nil {
		s.log.Error().Err(err).Str("path", s.listingPath).Msg("Failed to open browser")
		fmt.Fprintf(s.out, "Could not open the browser, the listing is at %s\n", s.listingPath)
	}
}

func (s *Session) searchWishlist() {
	fmt.Fprintln(s.out)
	matches := matcher.FindMatches(s.deals, s.wishlist.Items())
	for _, m := range matches {
		fmt.Fprintf(s.out, "Wishlist item %s found! --->%s: %s\n", m.Term, helpers.NormalizeTitle(m.Title), m.URL)
	}
	if len(matches) == 0 {
		fmt.Fprintln(s.out, "No wishlist items found in the current deals.")
	}
	fmt.Fprintln(s.out)

	s.publishMatches(matches)
}

func (s *Session) publishMatches(matches []matcher.Match) {
	if s.publisher == nil || len(matches) == 0 {
		return
	}
	published := 0
	for _, m := range matches {
		alert := publisher.NewAlert(m.Term, helpers.NormalizeTitle(m.Title), m.URL)
		if err := publisher.PublishAlert(s.publisher, alert); err != nil {
			s.log.Warn().Err(err).Str("term", m.Term).Msg("Failed to publish alert")
			continue
		}
		published++
	}
	if err := s.publisher.TrimStreams(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to trim alert stream")
	}
	s.log.Info().Int("alerts", published).Msg("Published wishlist alerts")
}

func (s *Session) displayWishlist() {
	if s.wishlist.Len() == 0 {
		fmt.Fprintln(s.out, "Wishlist is empty")
		return
	}
	fmt.Fprintf(s.out, "Wishlist: %s\n", strings.Join(s.wishlist.Items(), ", "))
}

func (s *Session) maintainWishlist() error {
	for {
		s.displayMenu(maintenanceMenu, "Wishlist Maintenance")
		selection, err := s.prompt("Enter your selection---> ")
		if err != nil {
			return err
		}

		switch selection {
		case "1":
			if err := s.addItems(); err != nil {
				return err
			}
		case "2":
			if err := s.removeItems(); err != nil {
				return err
			}
		case "3":
			s.displayWishlist()
		case "4":
			return nil
		}
	}
}

func (s *Session) addItems() error {
	for {
		item, err := s.prompt("What keyword would you like to add to your wishlist? ")
		if err != nil {
			return err
		}
		if item == "" {
			fmt.Fprintln(s.out, "Keyword cannot be empty")
		} else if _, err := s.wishlist.Add(item); err != nil {
			fmt.Fprintln(s.out, "Warning: the wishlist could not be saved")
		}
		s.displayWishlist()

		more, err := s.prompt("Add another item? (y/n) ")
		if err != nil {
			return err
		}
		if more != "y" {
			return nil
		}
	}
}

func (s *Session) removeItems() error {
	if s.wishlist.Len() == 0 {
		s.displayWishlist()
		return nil
	}
	for s.wishlist.Len() > 0 {
		item, err := s.prompt("What keyword would you like to remove from your wishlist? ")
		if err != nil {
			return err
		}

		err = s.wishlist.Remove(item)
		switch {
		case errors.IsType(err, errors.ErrorTypeItemNotFound):
			fmt.Fprintln(s.out, "Item not in wishlist")
		case err != nil:
			fmt.Fprintln(s.out, "Warning: the wishlist could not be saved")
			s.displayWishlist()
		default:
			s.displayWishlist()
		}

		more, err := s.prompt("Remove another item? (y/n) ")
		if err != nil {
			return err
		}
		if more != "y" {
			return nil
		}
	}
	return nil
}

func (s *Session) searchKeyword() error {
	for {
		keyword, err := s.prompt("Enter your keyword---> ")
		if err != nil {
			return err
		}

		matches := matcher.Search(s.deals, keyword)
		if len(matches) == 0 {
			fmt.Fprintln(s.out, "No deals for the given keyword.")
		} else {
			fmt.Fprintln(s.out)
			for _, m := range matches {
				fmt.Fprintf(s.out, "%s: %s\n", helpers.NormalizeTitle(m.Title), m.URL)
			}
		}
		fmt.Fprintln(s.out)

		more, err := s.prompt("Do you want to keep searching? (y/n) ")
		if err != nil {
			return err
		}
		if more != "y" {
			return nil
		}
	}
}
