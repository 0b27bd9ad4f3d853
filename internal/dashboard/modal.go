package dashboard

import (
	"strings"
	"sync"

	domainerrors "github.com/catalogdash/catalogdash/internal/errors"
)

// DialogIDs are the help dialogs, one per chart card.
var DialogIDs = []string{
	"map", "trend", "month", "country", "genre", "hierarchy",
	"duration", "seasons", "director", "rating", "cast",
}

const (
	openPrefix  = "open-modal-"
	closePrefix = "close-modal-"
)

// Trigger is a parsed open or close event for one dialog.
type Trigger struct {
	Dialog string
	Open   bool
}

// OpenTrigger returns the trigger id that opens dialog.
func OpenTrigger(dialog string) string { return openPrefix + dialog }

// CloseTrigger returns the trigger id that closes dialog.
func CloseTrigger(dialog string) string { return closePrefix + dialog }

// ParseTrigger parses "open-modal-<id>" or "close-modal-<id>".
func ParseTrigger(s string) (Trigger, error) {
	var t Trigger
	switch {
	case strings.HasPrefix(s, openPrefix):
		t = Trigger{Dialog: strings.TrimPrefix(s, openPrefix), Open: true}
	case strings.HasPrefix(s, closePrefix):
		t = Trigger{Dialog: strings.TrimPrefix(s, closePrefix)}
	default:
		return Trigger{}, domainerrors.NotFoundf("unknown trigger %q", s)
	}
	if !isDialog(t.Dialog) {
		return Trigger{}, domainerrors.NotFoundf("unknown dialog %q", t.Dialog)
	}
	return t, nil
}

func isDialog(id string) bool {
	for _, d := range DialogIDs {
		if d == id {
			return true
		}
	}
	return false
}

// ModalBoard holds the open/closed state of every dialog. All dialogs start
// closed. Either trigger of a dialog flips that dialog and no other.
type ModalBoard struct {
	mu   sync.Mutex
	open map[string]bool
}

func NewModalBoard() *ModalBoard {
	b := &ModalBoard{open: make(map[string]bool, len(DialogIDs))}
	for _, id := range DialogIDs {
		b.open[id] = false
	}
	return b
}

// Dispatch applies a trigger and returns the dialog's new state.
func (b *ModalBoard) Dispatch(trigger string) (Trigger, bool, error) {
	t, err := ParseTrigger(trigger)
	if err != nil {
		return Trigger{}, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open[t.Dialog] = !b.open[t.Dialog]
	return t, b.open[t.Dialog], nil
}

// IsOpen reports whether dialog is open. Unknown dialogs are closed.
func (b *ModalBoard) IsOpen(dialog string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open[dialog]
}

// State returns a copy of every dialog's state.
func (b *ModalBoard) State() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]bool, len(b.open))
	for id, open := range b.open {
		out[id] = open
	}
	return out
}
