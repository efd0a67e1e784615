package wishlist

import (
	"testing"

	"sjsage522/slickdealer/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEmptyWhenAbsent(t *testing.T) {
	w := Open(&MockStore{})
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Items())
}

func TestOpenEmptyWhenCorrupt(t *testing.T) {
	w := Open(&MockStore{loadErr: errors.NewStoreLoad("mock", "corrupt", nil)})
	assert.Equal(t, 0, w.Len())
}

func TestOpenLoadsSavedItems(t *testing.T) {
	store := &MockStore{items: []string{"tv", "lego"}, saved: true}
	w := Open(store)
	assert.Equal(t, []string{"lego", "tv"}, w.Items())
}

func TestAddLowercasesAndPersists(t *testing.T) {
	store := &MockStore{}
	w := Open(store)

	item, err := w.Add("Foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", item)
	assert.Equal(t, []string{"foo"}, w.Items())
	assert.True(t, w.Contains("foo"))
	assert.False(t, w.Contains("Foo"))
	assert.Equal(t, []string{"foo"}, store.items)

	// Duplicates collapse
	_, err = w.Add("FOO")
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, 2, store.saves)
}

func TestAddKeepsItemWhenSaveFails(t *testing.T) {
	store := &MockStore{saveErr: errors.NewStoreSave("mock", "write failed", errDiskFull)}
	w := Open(store)

	_, err := w.Add("lego")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeStoreSave))
	assert.True(t, w.Contains("lego"))
}

func TestRemove(t *testing.T) {
	store := &MockStore{items: []string{"tv", "lego"}, saved: true}
	w := Open(store)

	require.NoError(t, w.Remove("tv"))
	assert.Equal(t, []string{"lego"}, w.Items())
	assert.Equal(t, []string{"lego"}, store.items)
	assert.Equal(t, 1, store.saves)
}

func TestRemoveAbsentItem(t *testing.T) {
	store := &MockStore{items: []string{"tv"}, saved: true}
	w := Open(store)

	err := w.Remove("switch")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeItemNotFound))
	assert.Equal(t, []string{"tv"}, w.Items())
	assert.Equal(t, 0, store.saves, "nothing is written for an absent item")

	// Removal is exact; entries are stored lowercase
	err = w.Remove("TV")
	assert.True(t, errors.IsType(err, errors.ErrorTypeItemNotFound))
	assert.Equal(t, 1, w.Len())
}

func TestSaveAfterLoadIsNoOp(t *testing.T) {
	store := &MockStore{items: []string{"lego", "tv", "switch"}, saved: true}
	w := Open(store)

	require.NoError(t, w.Save())
	assert.ElementsMatch(t, []string{"lego", "tv", "switch"}, store.items)
}
