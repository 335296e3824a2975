package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"movierec/internal/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func titles(c *catalog.Catalog) []string {
	var out []string
	for _, m := range c.Movies {
		out = append(out, m.Title)
	}
	return out
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "movies.csv", "\ufefftitle,overview,poster,year\n"+
		"The Matrix,\"A hacker learns of a simulated reality...\",http://img/matrix.jpg,1999\n"+
		",No title here,,2000\n"+
		"Inception,\"A thief enters dreams to plant an idea...\",nan,2010\n"+
		"Blank Overview,   ,,2011\n"+
		"Titanic,A love story aboard a doomed ship...,  ,1997\n")

	cat, err := catalog.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"The Matrix", "Inception", "Titanic"}; !reflect.DeepEqual(titles(cat), want) {
		t.Errorf("titles = %v, want %v", titles(cat), want)
	}
	if cat.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", cat.Dropped)
	}
	if cat.Movies[0].Poster != "http://img/matrix.jpg" {
		t.Errorf("poster[0] = %q", cat.Movies[0].Poster)
	}
	if cat.Movies[1].Poster != "" || cat.Movies[2].Poster != "" {
		t.Errorf("null-like posters not dropped: %q %q", cat.Movies[1].Poster, cat.Movies[2].Poster)
	}
	if cat.Movies[0].Cleaned != "a hacker learns of a simulated reality" {
		t.Errorf("Cleaned = %q", cat.Movies[0].Cleaned)
	}
	if got := cat.Overviews(); len(got) != cat.Len() {
		t.Errorf("Overviews len = %d, want %d", len(got), cat.Len())
	}
}

func TestLoadTSVWithoutPoster(t *testing.T) {
	path := writeFile(t, "movies.tsv", "overview\ttitle\nDreams.\tInception\n")
	cat, err := catalog.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat.Len() != 1 || cat.Movies[0].Title != "Inception" || cat.Movies[0].Poster != "" {
		t.Errorf("unexpected catalog: %+v", cat.Movies)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, catalog.ErrDataSourceNotFound) {
			t.Errorf("error = %v, want ErrDataSourceNotFound", err)
		}
	})
	t.Run("missing columns", func(t *testing.T) {
		path := writeFile(t, "bad.csv", "name,plot\nx,y\n")
		_, err := catalog.Load(context.Background(), path)
		var se *catalog.SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("error = %v, want *SchemaError", err)
		}
		if want := []string{"title", "overview"}; !reflect.DeepEqual(se.Missing, want) {
			t.Errorf("Missing = %v, want %v", se.Missing, want)
		}
	})
	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		_, err := catalog.Load(context.Background(), path)
		var se *catalog.SchemaError
		if !errors.As(err, &se) {
			t.Errorf("error = %v, want *SchemaError", err)
		}
	})
	t.Run("missing sqlite file", func(t *testing.T) {
		_, err := catalog.Load(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "none.db"))
		if !errors.Is(err, catalog.ErrDataSourceNotFound) {
			t.Errorf("error = %v, want ErrDataSourceNotFound", err)
		}
	})
	t.Run("bad table name", func(t *testing.T) {
		if _, err := catalog.Open("sqlite://x.db?table=movies;drop"); err == nil {
			t.Error("expected error for invalid table name")
		}
	})
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE films (title TEXT, overview TEXT, poster TEXT)`,
		`INSERT INTO films VALUES ('The Matrix', 'A hacker learns of a simulated reality.', 'http://img/m.jpg')`,
		`INSERT INTO films VALUES ('Ghost', NULL, NULL)`,
		`INSERT INTO films VALUES ('Titanic', 'A love story aboard a doomed ship.', NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	cat, err := catalog.Load(context.Background(), "sqlite://"+path+"?table=films")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"The Matrix", "Titanic"}; !reflect.DeepEqual(titles(cat), want) {
		t.Errorf("titles = %v, want %v", titles(cat), want)
	}
	if cat.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", cat.Dropped)
	}

	_, err = catalog.Load(context.Background(), "sqlite://"+path)
	if !errors.Is(err, catalog.ErrDataSourceNotFound) {
		t.Errorf("default table error = %v, want ErrDataSourceNotFound", err)
	}
}
