package memory_test

import (
	"reflect"
	"testing"

	"movierec/internal/vectorstore/memory"
)

func loaded(t *testing.T, vectors [][]float64) *memory.Storage {
	t.Helper()
	s := memory.NewStorage()
	if err := s.Init(len(vectors[0])); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Load(vectors); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func TestInitAndLoadErrors(t *testing.T) {
	s := memory.NewStorage()
	if err := s.Init(0); err == nil {
		t.Error("Init(0) expected error")
	}
	if err := s.Load([][]float64{{1}}); err == nil {
		t.Error("Load before Init expected error")
	}
	if err := s.Init(2); err != nil {
		t.Fatalf("Init(2) error = %v", err)
	}
	if err := s.Load([][]float64{{1, 0}, {1}}); err == nil {
		t.Error("Load with ragged rows expected error")
	}
	if err := s.Load([][]float64{{1, 0}}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Load([][]float64{{1, 0}}); err == nil {
		t.Error("second Load expected error")
	}
}

func TestSimilarity(t *testing.T) {
	s := loaded(t, [][]float64{
		{0.6, 0.8, 0},
		{0, 0, 0},
		{0.6, 0.8, 0},
		{0, 0, 1},
		{3, 4, 0},
	})
	tests := []struct {
		name string
		i, j int
		want float64
	}{
		{"self", 0, 0, 1},
		{"zero self", 1, 1, 0},
		{"zero other", 0, 1, 0},
		{"orthogonal", 0, 3, 0},
		{"unnormalised", 0, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Similarity(tt.i, tt.j)
			if got < 0 || got > 1 {
				t.Fatalf("Similarity(%d,%d) = %v outside [0,1]", tt.i, tt.j, got)
			}
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("Similarity(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
			}
		})
	}
}

func TestNeighborsExcludesSelfAndIsStable(t *testing.T) {
	s := loaded(t, [][]float64{
		{1, 0},
		{0, 1},
		{1, 0},
		{0, 1},
		{1, 0},
	})
	got, err := s.Neighbors(0, 10)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	var idx []int
	for _, r := range got {
		idx = append(idx, r.Index)
	}
	want := []int{2, 4, 1, 3}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("Neighbors order = %v, want %v", idx, want)
	}
}

func TestNeighborsLimit(t *testing.T) {
	s := loaded(t, [][]float64{{1, 0}, {1, 1}, {0, 1}})
	for _, k := range []int{1, 2, 5} {
		got, err := s.Neighbors(1, k)
		if err != nil {
			t.Fatalf("Neighbors(1,%d) error = %v", k, err)
		}
		want := k
		if want > 2 {
			want = 2
		}
		if len(got) != want {
			t.Errorf("Neighbors(1,%d) len = %d, want %d", k, len(got), want)
		}
	}
	if _, err := s.Neighbors(3, 1); err == nil {
		t.Error("Neighbors out of range expected error")
	}
}
