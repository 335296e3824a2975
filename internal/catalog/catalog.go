// Package catalog loads the movie table that the recommender is built from.
//
// Sources are addressed by a single string:
//
//	movies.csv                       comma separated, header row
//	movies.tsv                       tab separated, header row
//	sqlite://data/movies.db?table=t  read-only SQLite table (default table "movies")
//
// Rows missing a title or an overview are dropped, not reported as errors.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"movierec/internal/domain"
	"movierec/internal/logging"
	"movierec/internal/textnorm"
)

// Required and optional column names.
const (
	ColumnTitle    = "title"
	ColumnOverview = "overview"
	ColumnPoster   = "poster"
)

// Source yields the header and raw rows of a flat table.
type Source interface {
	Name() string
	Read(ctx context.Context) (header []string, records [][]string, err error)
}

// Catalog is the ordered, validated movie table.
type Catalog struct {
	Source  string
	Movies  []domain.Movie
	Dropped int
}

// Len returns the number of movies.
func (c *Catalog) Len() int { return len(c.Movies) }

// Overviews returns the cleaned overviews in catalog order.
func (c *Catalog) Overviews() []string {
	out := make([]string, len(c.Movies))
	for i, m := range c.Movies {
		out[i] = m.Cleaned
	}
	return out
}

// Open resolves a source string to a Source.
func Open(source string) (Source, error) {
	switch {
	case strings.HasPrefix(source, sqliteScheme):
		return newSQLiteSource(source)
	case strings.HasSuffix(strings.ToLower(source), ".tsv"):
		return &CSVSource{Path: source, Comma: '\t'}, nil
	default:
		return &CSVSource{Path: source, Comma: ','}, nil
	}
}

// Load opens source and materialises the catalog.
func Load(ctx context.Context, source string) (*Catalog, error) {
	src, err := Open(source)
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, src)
}

// LoadFrom reads src, checks the schema and drops incomplete rows.
func LoadFrom(ctx context.Context, src Source) (*Catalog, error) {
	header, records, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	cols := indexColumns(header)
	var missing []string
	for _, req := range []string{ColumnTitle, ColumnOverview} {
		if _, ok := cols[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Source: src.Name(), Missing: missing}
	}

	cat := &Catalog{Source: src.Name(), Movies: make([]domain.Movie, 0, len(records))}
	titleIdx, overviewIdx := cols[ColumnTitle], cols[ColumnOverview]
	posterIdx, hasPoster := cols[ColumnPoster]
	for _, rec := range records {
		title := field(rec, titleIdx)
		overview := field(rec, overviewIdx)
		if strings.TrimSpace(title) == "" || strings.TrimSpace(overview) == "" {
			cat.Dropped++
			continue
		}
		m := domain.Movie{
			Title:    title,
			Overview: overview,
			Cleaned:  textnorm.Clean(overview),
		}
		if hasPoster {
			m.Poster = normalizePoster(field(rec, posterIdx))
		}
		cat.Movies = append(cat.Movies, m)
	}

	logging.Info().
		Str("source", cat.Source).
		Int("movies", len(cat.Movies)).
		Int("dropped", cat.Dropped).
		Msg("catalog loaded")
	return cat, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// normalizePoster returns the trimmed URL, or "" for blank and null-like values.
func normalizePoster(raw string) string {
	p := strings.TrimSpace(raw)
	switch strings.ToLower(p) {
	case "", "nan", "null", "none":
		return ""
	}
	return p
}

func notFound(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataSourceNotFound, path, err)
}
