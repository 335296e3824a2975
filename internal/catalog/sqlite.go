package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const sqliteScheme = "sqlite://"

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads every column of one table from a SQLite database file.
type SQLiteSource struct {
	Path  string
	Table string
}

func newSQLiteSource(source string) (*SQLiteSource, error) {
	rest := strings.TrimPrefix(source, sqliteScheme)
	path, rawQuery, _ := strings.Cut(rest, "?")
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse sqlite source %q: %w", source, err)
	}
	table := q.Get("table")
	if table == "" {
		table = "movies"
	}
	if !identifierRe.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	return &SQLiteSource{Path: path, Table: table}, nil
}

func (s *SQLiteSource) Name() string { return sqliteScheme + s.Path + "?table=" + s.Table }

func (s *SQLiteSource) Read(ctx context.Context) ([]string, [][]string, error) {
	// The driver would create a missing file, so check first.
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, notFound(s.Path, err)
		}
		return nil, nil, err
	}
	db, err := sql.Open("sqlite", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	var exists int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, s.Table).Scan(&exists)
	if err != nil {
		return nil, nil, fmt.Errorf("inspect %s: %w", s.Path, err)
	}
	if exists == 0 {
		return nil, nil, fmt.Errorf("%w: table %s in %s", ErrDataSourceNotFound, s.Table, s.Path)
	}

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+s.Table+`"`)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var records [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(header))
		ptrs := make([]any, len(header))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", s.Table, err)
		}
		rec := make([]string, len(header))
		for i, v := range vals {
			if v.Valid {
				rec[i] = v.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return header, records, nil
}
