package projects

import "testing"

func TestPercentLinked(t *testing.T) {
	tests := []struct {
		name   string
		linked int64
		total  int64
		want   int64
	}{
		{"no snippets", 0, 0, 0},
		{"none linked", 0, 8, 0},
		{"quarter linked", 1, 4, 25},
		{"all linked", 5, 5, 100},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentLinked(tt.linked, tt.total); got != tt.want {
				t.Errorf("PercentLinked(%d, %d) = %v, want %v", tt.linked, tt.total, got, tt.want)
			}
		})
	}
}
