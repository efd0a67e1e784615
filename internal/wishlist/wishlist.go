// Package wishlist keeps the user's set of lowercase keywords and persists it
// after every change.
package wishlist

import (
	"sort"
	"strings"

	"sjsage522/slickdealer/logger"
	"sjsage522/slickdealer/pkg/errors"
)

// Wishlist is a set of lowercase keywords backed by a Store
type Wishlist struct {
	items map[string]struct{}
	store Store
	log   *logger.Logger
}

// Open loads the wishlist from store. Load failures are logged and yield an empty wishlist.
func Open(store Store) *Wishlist {
	log := logger.ForComponent("wishlist").WithField("store", store.Name())
	return newWishlist(store, Load(store, log), log)
}

// Load reads the persisted items, returning nil on any failure
func Load(store Store, log *logger.Logger) []string {
	items, err := store.Load()
	switch {
	case err == nil:
		log.Info().Int("items", len(items)).Msg("Wishlist loaded")
		return items
	case errors.IsType(err, errors.ErrorTypeStoreAbsent):
		log.Info().Msg("No saved wishlist, starting empty")
	default:
		log.Warn().Err(err).Msg("Saved wishlist is unreadable, starting empty")
	}
	return nil
}

func newWishlist(store Store, items []string, log *logger.Logger) *Wishlist {
	w := &Wishlist{
		items: make(map[string]struct{}, len(items)),
		store: store,
		log:   log,
	}
	for _, item := range items {
		w.items[strings.ToLower(item)] = struct{}{}
	}
	return w
}

// Add lowercases item, inserts it and persists the wishlist. The item stays in
// memory even when saving fails; the returned error is a store_save error.
func (w *Wishlist) Add(item string) (string, error) {
	item = strings.ToLower(item)
	w.items[item] = struct{}{}
	return item, w.Save()
}

// Remove deletes item by exact match and persists the wishlist. An absent item
// returns an item_not_found error and nothing is written.
func (w *Wishlist) Remove(item string) error {
	if _, ok := w.items[item]; !ok {
		return errors.NewItemNotFound(item)
	}
	delete(w.items, item)
	return w.Save()
}

// Save writes the full set to the store
func (w *Wishlist) Save() error {
	if err := w.store.Save(w.Items()); err != nil {
		w.log.Error().Err(err).Msg("Failed to save wishlist")
		return err
	}
	w.log.Debug().Int("items", len(w.items)).Msg("Wishlist saved")
	return nil
}

// Contains reports whether item is in the wishlist
func (w *Wishlist) Contains(item string) bool {
	_, ok := w.items[item]
	return ok
}

// Len returns the number of items
func (w *Wishlist) Len() int {
	return len(w.items)
}

// Items returns the items in sorted order
func (w *Wishlist) Items() []string {
	items := make([]string, 0, len(w.items))
	for item := range w.items {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}
