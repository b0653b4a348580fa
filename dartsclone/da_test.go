package dartsclone

import (
	"bytes"
	"fmt"
	"sort"
	"testing"
)

func TestAsUInt32Array(t *testing.T) {
	ba := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}
	ia := asUInt32Array(ba)
	if len(ia) != 2 {
		t.Errorf("length is %d", len(ia))
	}
	if ia[0] != 1 {
		t.Errorf("unexpected error %v", ia[0])
	}
	if ia[1] != 2 {
		t.Errorf("unexpected error %v", ia[1])
	}
	if got := asUInt32Array(nil); len(got) != 0 {
		t.Errorf("length is %d", len(got))
	}
}

func TestAsByteArray(t *testing.T) {
	ia := []uint32{1, 2}
	ba := asByteArray(ia)
	if len(ba) != 8 {
		t.Errorf("length is %d", len(ba))
	}
	if !bytes.Equal(ba, []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}) {
		t.Errorf("unexpected error %v", ba)
	}
}

func TestBuild(t *testing.T) {
	keys := [][]byte{
		[]byte("КОТ"),
		[]byte("КОТА"),
		[]byte("КОТАМИ"),
		[]byte("КОТОВ"),
		[]byte("КОШКА"),
	}
	values := []int{0, 1, 2, 3, 4}

	trie := NewDoubleArray()
	err := trie.Build(keys, values, func(state int, max int) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("ExactMatchSearch", func(t *testing.T) {
		for i, key := range keys {
			got, length := trie.ExactMatchSearch(key)
			if got != values[i] {
				t.Errorf("got %v, expected %v", got, values[i])
			}
			if length != len(key) {
				t.Errorf("got %v, expected %v", length, len(key))
			}
		}
		if got, _ := trie.ExactMatchSearch([]byte("КО")); got != -1 {
			t.Errorf("got %v, expected -1", got)
		}
		if got, _ := trie.ExactMatchSearch([]byte("СОБАКА")); got != -1 {
			t.Errorf("got %v, expected -1", got)
		}
	})

	t.Run("CommonPrefixSearch", func(t *testing.T) {
		ret := trie.CommonPrefixSearch([]byte("КОТАМИ"), 0, 5)
		if len(ret) != 3 {
			t.Fatalf("got %d results, expected 3", len(ret))
		}
		expected := []int{0, 1, 2}
		for i := range ret {
			if ret[i][0] != expected[i] {
				t.Errorf("got %v, expected %v", ret[i][0], expected[i])
			}
			if got := string([]byte("КОТАМИ")[:ret[i][1]]); got != string(keys[expected[i]]) {
				t.Errorf("got %v, expected %v", got, string(keys[expected[i]]))
			}
		}
	})

	t.Run("PredictiveSearch", func(t *testing.T) {
		gotKeys, gotValues := trie.PredictiveSearch([]byte("КОТ"))
		if len(gotKeys) != 4 {
			t.Fatalf("got %d results, expected 4", len(gotKeys))
		}
		for i := 0; i < 4; i++ {
			if string(gotKeys[i]) != string(keys[i]) {
				t.Errorf("got %v, expected %v", string(gotKeys[i]), string(keys[i]))
			}
			if gotValues[i] != values[i] {
				t.Errorf("got %v, expected %v", gotValues[i], values[i])
			}
		}
	})

	t.Run("PredictiveSearch no match", func(t *testing.T) {
		gotKeys, _ := trie.PredictiveSearch([]byte("КОТЫ"))
		if len(gotKeys) != 0 {
			t.Errorf("got %v, expected nothing", gotKeys)
		}
	})

	t.Run("PredictiveSearch empty query", func(t *testing.T) {
		gotKeys, _ := trie.PredictiveSearch(nil)
		if len(gotKeys) != len(keys) {
			t.Fatalf("got %d results, expected %d", len(gotKeys), len(keys))
		}
		for i := range keys {
			if !bytes.Equal(gotKeys[i], keys[i]) {
				t.Errorf("got %v, expected %v", string(gotKeys[i]), string(keys[i]))
			}
		}
	})
}

func TestBuildWrongOrder(t *testing.T) {
	trie := NewDoubleArray()
	err := trie.Build([][]byte{[]byte("b"), []byte("a")}, nil, nil)
	if err == nil {
		t.Errorf("expected an error for unsorted keys")
	}
}

func TestPredictiveSearchLarge(t *testing.T) {
	keys := make([][]byte, 0, 5000)
	for i := 0; i < 5000; i++ {
		keys = append(keys, []byte(fmt.Sprintf("СЛОВО %d %d", i%97, i)))
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	trie := NewDoubleArray()
	if err := trie.Build(keys, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewDoubleArray()
	reloaded.SetBuffer(append([]byte(nil), trie.ByteArray()...))

	got, values := reloaded.PredictiveSearch([]byte("СЛОВО "))
	if len(got) != len(keys) {
		t.Fatalf("got %d results, expected %d", len(got), len(keys))
	}
	for i := range keys {
		if !bytes.Equal(got[i], keys[i]) {
			t.Fatalf("got %v, expected %v", string(got[i]), string(keys[i]))
		}
		if values[i] != i {
			t.Fatalf("got %v, expected %v", values[i], i)
		}
	}

	got, _ = reloaded.PredictiveSearch([]byte("СЛОВО 5 "))
	for _, k := range got {
		if !bytes.HasPrefix(k, []byte("СЛОВО 5 ")) {
			t.Errorf("unexpected key %v", string(k))
		}
	}
	if len(got) == 0 {
		t.Errorf("no match")
	}
}

func TestBuildProgress(t *testing.T) {
	keys := [][]byte{[]byte("a"), []byte("ab"), []byte("b")}
	calls := 0
	last := 0
	trie := NewDoubleArray()
	err := trie.Build(keys, nil, func(state int, max int) {
		calls++
		last = state
		if max != len(keys) {
			t.Errorf("got %v, expected %v", max, len(keys))
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != len(keys) || last != len(keys) {
		t.Errorf("got %v calls ending at %v, expected %v", calls, last, len(keys))
	}
}

func TestBuildInvalidKeys(t *testing.T) {
	tests := []struct {
		name   string
		keys   [][]byte
		values []int
	}{
		{"null byte", [][]byte{[]byte("a\x00b")}, nil},
		{"negative value", [][]byte{[]byte("a")}, []int{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trie := NewDoubleArray()
			if err := trie.Build(tt.keys, tt.values, nil); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
