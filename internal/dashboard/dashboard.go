// Package dashboard binds filter controls to chart slots.
//
// Each slot has one render function (table, controls) -> Figure and a fixed
// list of controls it reads. Update re-renders exactly the slots bound to the
// controls that changed, in parallel, always from the immutable base table.
package dashboard

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/catalogdash/catalogdash/internal/catalog"
	domainerrors "github.com/catalogdash/catalogdash/internal/errors"
)

// Dashboard renders figures from one loaded table.
type Dashboard struct {
	table    *catalog.Table
	validate *Validator
}

// New creates a dashboard over table. A nil table behaves as empty.
func New(table *catalog.Table) *Dashboard {
	if table == nil {
		table = catalog.NewTable(nil)
	}
	return &Dashboard{table: table, validate: NewValidator()}
}

// Table returns the base table.
func (d *Dashboard) Table() *catalog.Table {
	return d.table
}

// Validate checks control values.
func (d *Dashboard) Validate(c Controls) error {
	return d.validate.Validate(c)
}

// Render computes the figure for one slot.
func (d *Dashboard) Render(slot Slot, c Controls) (Figure, error) {
	b, ok := bindings[slot]
	if !ok {
		return Figure{}, domainerrors.NotFoundf("unknown slot %q", slot)
	}
	if err := d.validate.Validate(c); err != nil {
		return Figure{}, err
	}
	return b.render(d.table, c)
}

// Affected returns the slots that read any of the changed controls, in
// layout order. No controls means every slot.
func Affected(changed ...string) ([]Slot, error) {
	if len(changed) == 0 {
		return Slots(), nil
	}
	want := make(map[string]bool, len(changed))
	for _, id := range changed {
		if !IsControl(id) {
			return nil, domainerrors.NotFoundf("unknown control %q", id)
		}
		want[id] = true
	}

	var out []Slot
	for _, slot := range slotOrder {
		for _, in := range bindings[slot].inputs {
			if want[in] {
				out = append(out, slot)
				break
			}
		}
	}
	return out, nil
}

// Update renders every slot affected by the changed controls.
func (d *Dashboard) Update(ctx context.Context, c Controls, changed ...string) (map[Slot]Figure, error) {
	slots, err := Affected(changed...)
	if err != nil {
		return nil, err
	}
	if err := d.validate.Validate(c); err != nil {
		return nil, err
	}

	figures := make([]Figure, len(slots))
	g, ctx := errgroup.WithContext(ctx)
	for i, slot := range slots {
		i, slot := i, slot
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := bindings[slot].render(d.table, c)
			if err != nil {
				return domainerrors.Wrap(err, domainerrors.CodeInternal, "rendering "+string(slot))
			}
			figures[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Slot]Figure, len(slots))
	for i, slot := range slots {
		out[slot] = figures[i]
	}
	return out, nil
}

// SortedSlots returns the keys of figures in layout order.
func SortedSlots(figures map[Slot]Figure) []Slot {
	pos := make(map[Slot]int, len(slotOrder))
	for i, s := range slotOrder {
		pos[s] = i
	}
	out := make([]Slot, 0, len(figures))
	for s := range figures {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}
