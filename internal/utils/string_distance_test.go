package utils

import (
	"reflect"
	"testing"
)

func TestComputeDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Ed Wood", "ed wood", 0},
		{"derrickson", "derickson", 1},
		{"zoë", "zoe", 1},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		if got := ComputeDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ComputeDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := ComputeDistance(tt.b, tt.a); got != tt.want {
			t.Errorf("distance not symmetric for %q, %q", tt.a, tt.b)
		}
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"scott derrickson", "scott dickson", "ed wood", "scott derrickson", "scot derickson"}

	got := Closest("scott derickson", candidates, 2, 0)
	want := []string{"scott derrickson", "scot derickson", "scott dickson"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Closest = %v, want %v", got, want)
	}

	if got := Closest("scott derickson", candidates, 2, 1); len(got) != 1 || got[0] != "scott derrickson" {
		t.Errorf("limit not applied: %v", got)
	}
	if got := Closest("orson welles", candidates, 2, 5); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
