package gomorphtag

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
)

// ModelSentinel terminates a saved tag pair table. It doubles as the
// sentence separator line of corpora.
const ModelSentinel = "----------"

type tagPair struct {
	prev string
	cur  string
}

// TagPairTriple is one entry of a TagPairTable.
type TagPairTriple struct {
	Prev  string
	Cur   string
	Count uint64
}

// TagPairTable counts how often a tag follows another. It is safe for
// concurrent use.
type TagPairTable struct {
	mu     sync.RWMutex
	counts map[tagPair]uint64
}

func NewTagPairTable() *TagPairTable {
	return &TagPairTable{
		counts: map[tagPair]uint64{},
	}
}

func (tp *TagPairTable) Add(prev, cur string, n uint64) {
	tp.mu.Lock()
	tp.counts[tagPair{prev, cur}] += n
	tp.mu.Unlock()
}

// Count returns 0 for pairs never seen.
func (tp *TagPairTable) Count(prev, cur string) uint64 {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.counts[tagPair{prev, cur}]
}

func (tp *TagPairTable) Len() int {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return len(tp.counts)
}

// Triples returns every entry sorted by previous and current tag.
func (tp *TagPairTable) Triples() []TagPairTriple {
	tp.mu.RLock()
	triples := make([]TagPairTriple, 0, len(tp.counts))
	for k, v := range tp.counts {
		triples = append(triples, TagPairTriple{k.prev, k.cur, v})
	}
	tp.mu.RUnlock()

	sort.Slice(triples, func(i, j int) bool {
		if triples[i].Prev != triples[j].Prev {
			return triples[i].Prev < triples[j].Prev
		}
		return triples[i].Cur < triples[j].Cur
	})
	return triples
}

// Totals sums the counts of every previous tag.
func (tp *TagPairTable) Totals() map[string]uint64 {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	totals := map[string]uint64{}
	for k, v := range tp.counts {
		totals[k.prev] += v
	}
	return totals
}

// Save writes "prev cur count " triples followed by ModelSentinel.
func (tp *TagPairTable) Save(writer io.Writer) error {
	bwriter := bufio.NewWriter(writer)
	for _, t := range tp.Triples() {
		_, err := fmt.Fprintf(bwriter, "%s %s %d ", t.Prev, t.Cur, t.Count)
		if err != nil {
			return err
		}
	}
	_, err := bwriter.WriteString(ModelSentinel)
	if err != nil {
		return err
	}
	return bwriter.Flush()
}

// LoadTagPairTable reads tokens up to ModelSentinel. Reaching the end of
// input first is an error. A repeated pair keeps its last count.
func LoadTagPairTable(reader io.Reader) (*TagPairTable, error) {
	s := bufio.NewScanner(reader)
	s.Buffer(make([]byte, 0, 4096), 1024*1024)
	s.Split(bufio.ScanWords)

	next := func(what string, n int) (string, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of file reading %s of entry %d: %w", what, n, ErrCorruptedModel)
		}
		return s.Text(), nil
	}

	tp := NewTagPairTable()
	for n := 1; ; n++ {
		prev, err := next("previous tag", n)
		if err != nil {
			return nil, err
		}
		if prev == ModelSentinel {
			break
		}
		cur, err := next("tag", n)
		if err != nil {
			return nil, err
		}
		field, err := next("count", n)
		if err != nil {
			return nil, err
		}
		count, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid count %q of entry %d: %w", field, n, ErrCorruptedModel)
		}
		tp.counts[tagPair{prev, cur}] = count
	}
	return tp, nil
}

// replace swaps in the counts of other.
func (tp *TagPairTable) replace(other *TagPairTable) {
	tp.mu.Lock()
	tp.counts = other.counts
	tp.mu.Unlock()
}
