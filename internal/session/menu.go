package session

import (
	"fmt"
)

type menuItem struct {
	key   string
	label string
}

var mainMenu = []menuItem{
	{"1.", "View current deals in browser"},
	{"2.", "Search Deals for Wishlist Items"},
	{"3.", "Display My Wishlist"},
	{"4.", "Wishlist Maintenance"},
	{"5.", "Search Deals by Keyword"},
	{"Q.", "Quit"},
}

var maintenanceMenu = []menuItem{
	{"1.", "Add item to Wishlist"},
	{"2.", "Remove Item from Wishlist"},
	{"3.", "Display My Wishlist"},
	{"4.", "Back to Main Menu"},
}

func (s *Session) displayMenu(menu []menuItem, menuPath string) {
	fmt.Fprintln(s.out, menuPath)
	fmt.Fprintln(s.out, "---------")
	for _, item := range menu {
		fmt.Fprintf(s.out, "%s %s\n", item.key, item.label)
	}
}
