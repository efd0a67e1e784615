package wishlist

// Store persists the wishlist as a whole under a fixed key.
//
// Load returns a store_absent error when nothing has been saved yet and a
// store_load error when the stored data is unreadable. Save overwrites the
// previous contents entirely.
type Store interface {
	Load() ([]string, error)
	Save(items []string) error
	Close() error
	Name() string
}
