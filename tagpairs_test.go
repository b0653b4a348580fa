package gomorphtag

import (
	"strings"
	"testing"
)

func TestLoadTagPairTable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prev     string
		cur      string
		expected uint64
	}{
		{"single", "A B 2 ----------", "A", "B", 2},
		{"repeated pair keeps the last count", "A B 2 A B 5 ----------", "A", "B", 5},
		{"line breaks", "A B 2\nB A 3\n----------\n", "B", "A", 3},
		{"absent", "A B 2 ----------", "B", "A", 0},
		{"trailing data", "A B 2 ---------- C D 9", "C", "D", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp, err := LoadTagPairTable(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tp.Count(tt.prev, tt.cur); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTagPairTableTotals(t *testing.T) {
	tp := NewTagPairTable()
	tp.Add("A", "B", 2)
	tp.Add("A", "C", 3)
	tp.Add("B", "A", 1)
	totals := tp.Totals()
	if totals["A"] != 5 || totals["B"] != 1 {
		t.Errorf("got %v, expected map[A:5 B:1]", totals)
	}
	if tp.Len() != 3 {
		t.Errorf("got %v, expected 3", tp.Len())
	}
}
