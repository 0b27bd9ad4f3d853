package dashboard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/catalogdash/catalogdash/internal/errors"
)

func TestModalBoardStartsClosed(t *testing.T) {
	b := NewModalBoard()
	state := b.State()
	assert.Len(t, state, 11)
	for id, open := range state {
		assert.False(t, open, "dialog %s", id)
	}
}

func TestModalOpenThenClose(t *testing.T) {
	b := NewModalBoard()

	_, open, err := b.Dispatch(OpenTrigger("trend"))
	require.NoError(t, err)
	assert.True(t, open)
	assert.True(t, b.IsOpen("trend"))

	_, open, err = b.Dispatch(CloseTrigger("trend"))
	require.NoError(t, err)
	assert.False(t, open)
	assert.False(t, b.IsOpen("trend"))
}

func TestModalOtherDialogUnaffected(t *testing.T) {
	b := NewModalBoard()
	b.Dispatch(OpenTrigger("map"))

	for _, other := range DialogIDs {
		if other == "map" {
			continue
		}
		b.Dispatch(OpenTrigger(other))
		b.Dispatch(CloseTrigger(other))
		assert.True(t, b.IsOpen("map"), "after triggers for %s", other)
	}
}

func TestModalEitherTriggerFlips(t *testing.T) {
	b := NewModalBoard()
	b.Dispatch(CloseTrigger("cast"))
	assert.True(t, b.IsOpen("cast"))
	b.Dispatch(OpenTrigger("cast"))
	assert.False(t, b.IsOpen("cast"))
}

func TestParseTrigger(t *testing.T) {
	tr, err := ParseTrigger("open-modal-hierarchy")
	require.NoError(t, err)
	assert.Equal(t, Trigger{Dialog: "hierarchy", Open: true}, tr)

	tr, err = ParseTrigger("close-modal-seasons")
	require.NoError(t, err)
	assert.Equal(t, Trigger{Dialog: "seasons"}, tr)

	for _, bad := range []string{"", "open-modal-", "open-modal-volume", "toggle-modal-map"} {
		_, err := ParseTrigger(bad)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "trigger %q", bad)
	}
}

func TestModalBoardConcurrentDispatch(t *testing.T) {
	b := NewModalBoard()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Dispatch(OpenTrigger("rating"))
		}()
	}
	wg.Wait()
	// An even number of flips leaves the dialog closed.
	assert.False(t, b.IsOpen("rating"))
}
