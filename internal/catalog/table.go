package catalog

// Table is an immutable, ordered set of titles.
type Table struct {
	rows []Title
}

// NewTable copies rows into a new Table.
func NewTable(rows []Title) *Table {
	cp := make([]Title, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// Len returns the number of rows. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Title {
	return t.rows[i]
}

// All returns a view over every row.
func (t *Table) All() View {
	n := t.Len()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return View{table: t, idx: idx}
}

// View is a read-only selection of rows from a Table.
type View struct {
	table *Table
	idx   []int
}

// Len returns the number of selected rows.
func (v View) Len() int {
	return len(v.idx)
}

// Row returns the i-th selected row.
func (v View) Row(i int) Title {
	return v.table.rows[v.idx[i]]
}

// Each calls fn for every selected row in order.
func (v View) Each(fn func(Title)) {
	for _, i := range v.idx {
		fn(v.table.rows[i])
	}
}

// Where returns the rows of v for which keep returns true.
func (v View) Where(keep func(Title) bool) View {
	var idx []int
	for _, i := range v.idx {
		if keep(v.table.rows[i]) {
			idx = append(idx, i)
		}
	}
	return View{table: v.table, idx: idx}
}
