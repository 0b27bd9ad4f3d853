package database

// TitleRow is one raw catalog row as stored in the snapshot. Columns that
// were empty in the source are nil.
type TitleRow struct {
	ShowID      string
	Type        *string
	Title       *string
	Director    *string
	Cast        *string
	Country     *string
	DateAdded   *string
	ReleaseYear *string
	Rating      *string
	Duration    *string
	ListedIn    *string
	Description *string
}

// Import records one `catalogdash import` run.
type Import struct {
	ID         int64
	SourcePath string
	RowCount   int
	ImportedAt *string
}

// Stats contains aggregate snapshot statistics.
type Stats struct {
	Titles  int
	Movies  int
	TVShows int
	Imports int
}
