package recommend_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"movierec/internal/catalog"
	"movierec/internal/domain"
	"movierec/internal/embedding/tfidf"
	"movierec/internal/recommend"
	"movierec/internal/textnorm"
	"movierec/internal/vectorstore/memory"
)

func newCatalog(rows ...[2]string) *catalog.Catalog {
	cat := &catalog.Catalog{Source: "test"}
	for _, r := range rows {
		cat.Movies = append(cat.Movies, domain.Movie{Title: r[0], Overview: r[1], Cleaned: textnorm.Clean(r[1])})
	}
	return cat
}

func newEngine() *recommend.Engine {
	return recommend.NewEngine(tfidf.NewVectorizer(tfidf.DefaultConfig()), memory.NewStorage())
}

func built(t *testing.T, cat *catalog.Catalog) *recommend.Engine {
	t.Helper()
	e := newEngine()
	if err := e.Build(cat); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return e
}

func exampleCatalog() *catalog.Catalog {
	return newCatalog(
		[2]string{"The Matrix", "A hacker learns of a simulated reality..."},
		[2]string{"Inception", "A thief enters dreams to plant an idea..."},
		[2]string{"Titanic", "A love story aboard a doomed ship..."},
	)
}

func TestNotReadyBeforeBuild(t *testing.T) {
	e := newEngine()
	if e.Ready() {
		t.Fatal("Ready() = true before Build")
	}
	if st := e.Status(); st.State != recommend.StateUnbuilt {
		t.Errorf("State = %q, want unbuilt", st.State)
	}
	if _, err := e.Recommend("The Matrix", 5); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Recommend error = %v, want ErrModelNotReady", err)
	}
	if _, err := e.Search("x", 5); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Search error = %v, want ErrModelNotReady", err)
	}
	if _, err := e.FindMovieIndex("x"); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("FindMovieIndex error = %v, want ErrModelNotReady", err)
	}
	if _, err := e.Similarity(0, 0); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Similarity error = %v, want ErrModelNotReady", err)
	}
}

func TestBuildFailuresKeepEngineUnbuilt(t *testing.T) {
	e := newEngine()
	if err := e.Build(newCatalog()); !errors.Is(err, recommend.ErrEmptyCatalog) {
		t.Fatalf("Build(empty) error = %v, want ErrEmptyCatalog", err)
	}
	st := e.Status()
	if st.State != recommend.StateUnbuilt || st.Error == "" {
		t.Errorf("Status = %+v, want unbuilt with error", st)
	}
	if _, err := e.Recommend("x", 1); !errors.Is(err, recommend.ErrModelNotReady) {
		t.Errorf("Recommend after failed build error = %v, want ErrModelNotReady", err)
	}
}

func TestBuildOnce(t *testing.T) {
	e := built(t, exampleCatalog())
	if err := e.Build(exampleCatalog()); !errors.Is(err, recommend.ErrAlreadyBuilt) {
		t.Errorf("second Build error = %v, want ErrAlreadyBuilt", err)
	}
	st := e.Status()
	if st.State != recommend.StateReady || st.Movies != 3 || st.Vocabulary == 0 || st.Error != "" {
		t.Errorf("Status = %+v", st)
	}
}

func TestFindMovieIndex(t *testing.T) {
	e := built(t, newCatalog(
		[2]string{"The Matrix Reloaded", "Neo fights agents again."},
		[2]string{"The Matrix", "A hacker learns of a simulated reality."},
		[2]string{"Matrix Revolutions", "The war ends."},
	))
	tests := []struct {
		query string
		want  int
	}{
		{"the matrix", 1},
		{"THE MATRIX", 1},
		{"The Matrix", 1},
		{"  the matrix  ", 1},
		{"matrix", 0},
		{"REVOLUTIONS", 2},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := e.FindMovieIndex(tt.query)
			if err != nil {
				t.Fatalf("FindMovieIndex(%q) error = %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("FindMovieIndex(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestRecommendNotFoundEchoesQuery(t *testing.T) {
	e := built(t, exampleCatalog())
	for _, q := range []string{"Nonexistent Movie Title", "  ", ""} {
		_, err := e.Recommend(q, 5)
		if !errors.Is(err, recommend.ErrMovieNotFound) {
			t.Fatalf("Recommend(%q) error = %v, want ErrMovieNotFound", q, err)
		}
		var nf *recommend.MovieNotFoundError
		if !errors.As(err, &nf) || nf.Query != q {
			t.Errorf("Recommend(%q) not-found query = %+v", q, nf)
		}
	}
}

func TestRecommendExample(t *testing.T) {
	e := built(t, exampleCatalog())
	res, err := e.Recommend("matrix", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.RequestedMovie != "The Matrix" {
		t.Errorf("RequestedMovie = %q, want The Matrix", res.RequestedMovie)
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("len = %d, want 2", len(res.Recommendations))
	}
	got := map[string]bool{}
	for _, r := range res.Recommendations {
		got[r.Title] = true
		if r.SimilarityScore < 0 || r.SimilarityScore > 1 {
			t.Errorf("score %v outside [0,1]", r.SimilarityScore)
		}
	}
	if !got["Inception"] || !got["Titanic"] || got["The Matrix"] {
		t.Errorf("recommendations = %+v", res.Recommendations)
	}
}

func TestRecommendRanking(t *testing.T) {
	e := built(t, newCatalog(
		[2]string{"Space Wars", "Rebels fight an empire in space."},
		[2]string{"Star Voyage", "A crew explores deep space."},
		[2]string{"Love Boat", "Romance blooms aboard a cruise ship."},
		[2]string{"Galactic Empire", "The empire strikes rebels in space."},
	))
	res, err := e.Recommend("Space Wars", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	var order []string
	for _, r := range res.Recommendations {
		order = append(order, r.Title)
	}
	want := []string{"Galactic Empire", "Star Voyage", "Love Boat"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s := res.Recommendations[2].SimilarityScore; s != 0 {
		t.Errorf("unrelated score = %v, want 0", s)
	}
}

func TestRecommendTiesKeepCatalogOrder(t *testing.T) {
	e := built(t, newCatalog(
		[2]string{"Query", "ocean"},
		[2]string{"B", "desert"},
		[2]string{"C", "forest"},
		[2]string{"D", "mountain"},
	))
	res, err := e.Recommend("Query", 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	var order []string
	for _, r := range res.Recommendations {
		order = append(order, r.Title)
	}
	if want := []string{"B", "C", "D"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRecommendLength(t *testing.T) {
	e := built(t, exampleCatalog())
	for limit := 1; limit <= 25; limit++ {
		res, err := e.Recommend("Inception", limit)
		if err != nil {
			t.Fatalf("Recommend(limit=%d) error = %v", limit, err)
		}
		want := limit
		if want > 2 {
			want = 2
		}
		if len(res.Recommendations) != want {
			t.Errorf("limit %d: len = %d, want %d", limit, len(res.Recommendations), want)
		}
		for _, r := range res.Recommendations {
			if r.Title == "Inception" {
				t.Errorf("limit %d: result contains the query movie", limit)
			}
		}
	}
	res, err := e.Recommend("Inception", 0)
	if err != nil || len(res.Recommendations) != 2 {
		t.Errorf("Recommend(limit=0) = %v, %v", res, err)
	}
}

func TestRecommendIdempotent(t *testing.T) {
	e := built(t, exampleCatalog())
	a, err := e.Recommend("titanic", 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Recommend("titanic", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated Recommend differ: %+v vs %+v", a, b)
	}
}

func TestRecommendPoster(t *testing.T) {
	cat := exampleCatalog()
	cat.Movies[1].Poster = "http://img/inception.jpg"
	e := built(t, cat)
	res, err := e.Recommend("The Matrix", 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res.Recommendations {
		if r.Title == "Inception" && r.Poster != "http://img/inception.jpg" {
			t.Errorf("Inception poster = %q", r.Poster)
		}
		if r.Title == "Titanic" && r.Poster != "" {
			t.Errorf("Titanic poster = %q, want empty", r.Poster)
		}
	}
}

func TestSelfSimilarity(t *testing.T) {
	e := built(t, newCatalog(
		[2]string{"A", "A hacker learns of a simulated reality."},
		[2]string{"B", "!!!"},
	))
	if s, err := e.Similarity(0, 0); err != nil || s != 1 {
		t.Errorf("Similarity(0,0) = %v, %v; want 1", s, err)
	}
	if s, err := e.Similarity(1, 1); err != nil || s != 0 {
		t.Errorf("Similarity(1,1) = %v, %v; want 0", s, err)
	}
	if _, err := e.Similarity(0, 2); err == nil {
		t.Error("Similarity out of range expected error")
	}
}

func TestSearch(t *testing.T) {
	e := built(t, exampleCatalog())
	got, err := e.Search("inc", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Inception" {
		t.Errorf("Search(inc) = %+v", got)
	}

	got, err = e.Search("T", 10)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, m := range got {
		order = append(order, m.Title)
	}
	if want := []string{"The Matrix", "Inception", "Titanic"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Search(T) = %v, want %v", order, want)
	}

	got, err = e.Search("t", 2)
	if err != nil || len(got) != 2 {
		t.Errorf("Search(t, 2) = %+v, %v", got, err)
	}

	got, err = e.Search("zzz", 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Search(zzz) = %+v, %v", got, err)
	}
}

func TestConcurrentQueriesDuringBuild(t *testing.T) {
	e := newEngine()
	var wg sync.WaitGroup
	start := make(chan struct{})
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < 200; i++ {
				_, err := e.Recommend("matrix", 2)
				if err != nil && !errors.Is(err, recommend.ErrModelNotReady) {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}
	close(start)
	if err := e.Build(exampleCatalog()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	wg.Wait()
	if _, err := e.Recommend("matrix", 2); err != nil {
		t.Errorf("Recommend after build error = %v", err)
	}
}
