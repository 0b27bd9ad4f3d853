package database

import (
	"database/sql"
	"fmt"
)

const titleColumns = `show_id, type, title, director, "cast", country, date_added,
		release_year, rating, duration, listed_in, description`

// ReplaceTitles swaps the snapshot contents for rows and records the import.
// Rows with a duplicate show_id after the first are skipped. It returns the
// number of rows written.
func (db *DB) ReplaceTitles(sourcePath string, rows []TitleRow) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM titles"); err != nil {
		return 0, fmt.Errorf("clearing titles: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO titles (` + titleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	written := 0
	for _, r := range rows {
		res, err := stmt.Exec(r.ShowID, r.Type, r.Title, r.Director, r.Cast, r.Country,
			r.DateAdded, r.ReleaseYear, r.Rating, r.Duration, r.ListedIn, r.Description)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", r.ShowID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			written++
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO imports (source_path, row_count) VALUES (?, ?)",
		sourcePath, written,
	); err != nil {
		return 0, fmt.Errorf("recording import: %w", err)
	}

	return written, tx.Commit()
}

// GetTitles returns every stored row in insertion order.
func (db *DB) GetTitles() ([]TitleRow, error) {
	rows, err := db.conn.Query(`SELECT ` + titleColumns + ` FROM titles ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTitles(rows)
}

// GetLastImport returns the most recent import, or nil if none exist.
func (db *DB) GetLastImport() (*Import, error) {
	row := db.conn.QueryRow(
		"SELECT id, source_path, row_count, imported_at FROM imports ORDER BY id DESC LIMIT 1",
	)

	var imp Import
	if err := row.Scan(&imp.ID, &imp.SourcePath, &imp.RowCount, &imp.ImportedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &imp, nil
}

// GetStats returns aggregate snapshot statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM titles", &s.Titles},
		{"SELECT COUNT(*) FROM titles WHERE type = 'Movie'", &s.Movies},
		{"SELECT COUNT(*) FROM titles WHERE type = 'TV Show'", &s.TVShows},
		{"SELECT COUNT(*) FROM imports", &s.Imports},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func scanTitles(rows *sql.Rows) ([]TitleRow, error) {
	var titles []TitleRow
	for rows.Next() {
		var r TitleRow
		if err := rows.Scan(&r.ShowID, &r.Type, &r.Title, &r.Director, &r.Cast, &r.Country,
			&r.DateAdded, &r.ReleaseYear, &r.Rating, &r.Duration, &r.ListedIn, &r.Description); err != nil {
			return nil, err
		}
		titles = append(titles, r)
	}
	return titles, rows.Err()
}
