package analyzer

import (
	"errors"
	"math"
	"testing"
)

func TestRankStableTies(t *testing.T) {
	profiles := []BrandProfile{
		{Name: "A", TotalAppearances: 5},
		{Name: "C", TotalAppearances: 2},
		{Name: "B", TotalAppearances: 5},
		{Name: "D", TotalAppearances: 9},
	}

	ranked, err := RankBrands(profiles, BrandKeyAppearances)
	if err != nil {
		t.Fatalf("RankBrands failed: %v", err)
	}

	expected := []string{"D", "A", "B", "C"}
	for i, name := range expected {
		if ranked[i].Item.Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, ranked[i].Item.Name)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("Position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
	}

	if profiles[0].Name != "A" || profiles[3].Name != "D" {
		t.Error("Rank must not reorder its input")
	}
}

func TestRankIsPermutation(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, math.NaN()}

	ranked := Rank(values, func(v float64) float64 { return v })
	if len(ranked) != len(values) {
		t.Fatalf("Expected %d entries, got %d", len(values), len(ranked))
	}

	seen := make(map[float64]int)
	nans := 0
	for _, r := range ranked {
		if math.IsNaN(r.Item) {
			nans++
			continue
		}
		seen[r.Item]++
	}
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		seen[v]--
	}
	for v, n := range seen {
		if n != 0 {
			t.Errorf("Value %v count mismatch %d", v, n)
		}
	}
	if nans != 1 || !math.IsNaN(ranked[len(ranked)-1].Item) {
		t.Error("Expected the NaN entry last")
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Entries %d and %d out of order", i-1, i)
		}
	}
}

func TestRankKeepsOriginalScores(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		order  []int
	}{
		{"nan last", []float64{math.NaN(), 2, 7}, []int{2, 1, 0}},
		{"nan ties negative infinity in input order", []float64{math.Inf(-1), math.NaN(), 1}, []int{2, 0, 1}},
		{"finite only", []float64{1, 3, 2}, []int{1, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := make([]int, len(tt.values))
			for i := range idx {
				idx[i] = i
			}

			ranked := Rank(idx, func(i int) float64 { return tt.values[i] })
			for pos, want := range tt.order {
				r := ranked[pos]
				if r.Item != want || r.Rank != pos+1 {
					t.Errorf("Position %d: expected item %d rank %d, got item %d rank %d", pos, want, pos+1, r.Item, r.Rank)
				}
				orig := tt.values[r.Item]
				if math.IsNaN(orig) {
					if !math.IsNaN(r.Score) {
						t.Errorf("Expected NaN score to be kept, got %v", r.Score)
					}
					continue
				}
				if r.Score != orig {
					t.Errorf("Position %d: expected score %v, got %v", pos, orig, r.Score)
				}
			}
		})
	}
}

func TestRankVideos(t *testing.T) {
	videos := []VideoPerformance{
		{Index: 1, Efficiency: 2, ProcessingSpeed: 0.5, AnalysisSeconds: 10, VideoSeconds: 20},
		{Index: 2, Efficiency: 4, ProcessingSpeed: 0.25, AnalysisSeconds: 5, VideoSeconds: 20},
		{Index: 3, Efficiency: 0.5, ProcessingSpeed: 2, AnalysisSeconds: 20, VideoSeconds: 10},
	}

	tests := []struct {
		key  string
		want []int
	}{
		{key: VideoKeyEfficiency, want: []int{2, 1, 3}},
		{key: VideoKeySpeed, want: []int{3, 1, 2}},
		{key: VideoKeyAnalysisTime, want: []int{3, 1, 2}},
		{key: VideoKeyDuration, want: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ranked, err := RankVideos(videos, tt.key)
			if err != nil {
				t.Fatalf("RankVideos failed: %v", err)
			}
			for i, idx := range tt.want {
				if ranked[i].Item.Index != idx {
					t.Errorf("Position %d: expected video %d, got %d", i, idx, ranked[i].Item.Index)
				}
			}
		})
	}
}

func TestRankUnknownKey(t *testing.T) {
	if _, err := RankBrands(nil, "efficiency"); !errors.Is(err, ErrUnknownRankKey) {
		t.Errorf("Expected ErrUnknownRankKey for brands, got %v", err)
	}
	if _, err := RankVideos(nil, "appearances"); !errors.Is(err, ErrUnknownRankKey) {
		t.Errorf("Expected ErrUnknownRankKey for videos, got %v", err)
	}

	ranked, err := RankBrands(nil, BrandKeyConfidence)
	if err != nil || len(ranked) != 0 {
		t.Errorf("Expected empty ranking, got %v (%v)", ranked, err)
	}
}
