package dictionary

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Tags assigned from the surface form alone.
const (
	TagPunct   = "PNCT"
	TagNumber  = "NUMB"
	TagLatin   = "LATN"
	TagUnknown = "UNKN"
)

// SuffixLength is the number of trailing characters used for suffix
// statistics of unknown words.
const SuffixLength = 3

// IsUnambiguous reports whether tag is one of the classes that skip
// disambiguation.
func IsUnambiguous(tag string) bool {
	switch tag {
	case TagPunct, TagNumber, TagLatin, TagUnknown:
		return true
	}
	return false
}

// Candidate is one analysis of a word. Weight is at least 1.
type Candidate struct {
	Lemma  string
	Tag    string
	Weight uint32
}

// Tables are the string tables and paradigms referenced by trie keys.
type Tables struct {
	Prefixes  []string
	Suffixes  []string
	Tags      []string
	Paradigms []Paradigm
}

// Validate checks that every paradigm index points into its table.
func (t *Tables) Validate() error {
	if len(t.Tags) == 0 {
		return fmt.Errorf("empty tag table: %w", ErrCorruptedDictionary)
	}
	for i, p := range t.Paradigms {
		if err := p.validate(len(t.Prefixes), len(t.Suffixes), len(t.Tags)); err != nil {
			return fmt.Errorf("paradigm %d: %s: %w", i, err, ErrCorruptedDictionary)
		}
	}
	return nil
}

// Lexicon looks words up in the word form index and falls back to
// character classes and suffix statistics. It is safe for concurrent use.
type Lexicon struct {
	words    Index
	ends     Index
	tables   *Tables
	category *CharacterCategory
	cache    *lru.Cache[string, []Candidate]
}

// NewLexicon combines the indexes with their tables. ends is the index
// holding suffix statistics keys.
func NewLexicon(words Index, ends Index, tables *Tables, category *CharacterCategory) *Lexicon {
	return &Lexicon{
		words:    words,
		ends:     ends,
		tables:   tables,
		category: category,
	}
}

// SetCacheSize enables an LRU cache of lookup results. size <= 0 disables
// it.
func (lex *Lexicon) SetCacheSize(size int) error {
	if size <= 0 {
		lex.cache = nil
		return nil
	}
	cache, err := lru.New[string, []Candidate](size)
	if err != nil {
		return err
	}
	lex.cache = cache
	return nil
}

func (lex *Lexicon) Tables() *Tables {
	return lex.tables
}

// Lookup returns the candidates for word, never an empty list when err is
// nil.
func (lex *Lexicon) Lookup(word string) ([]Candidate, error) {
	if word == "" {
		return nil, ErrEmptyWord
	}
	if lex.cache != nil {
		if cands, ok := lex.cache.Get(word); ok {
			return append([]Candidate(nil), cands...), nil
		}
	}

	cands, err := lex.lookup(word)
	if err != nil {
		return nil, err
	}
	if lex.cache != nil {
		lex.cache.Add(word, append([]Candidate(nil), cands...))
	}
	return cands, nil
}

func (lex *Lexicon) lookup(word string) ([]Candidate, error) {
	normalized := NormalizeWord([]byte(word))

	cands, err := lex.LookupWordForm(normalized)
	if err != nil || len(cands) > 0 {
		return cands, err
	}

	if tag := lex.classify(word); tag != "" {
		return []Candidate{{Lemma: word, Tag: tag, Weight: 1}}, nil
	}

	cands, err = lex.LookupSuffix(word, LastChars(normalized, SuffixLength))
	if err != nil || len(cands) > 0 {
		return cands, err
	}
	return []Candidate{{Lemma: word, Tag: TagUnknown, Weight: 1}}, nil
}

// classify maps the first character of word to PNCT, NUMB or LATN.
func (lex *Lexicon) classify(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	if lex.category == nil {
		return ""
	}
	cats := lex.category.GetCategoryTypes(r)
	switch {
	case cats&SYMBOL != 0:
		return TagPunct
	case cats&NUMERIC != 0:
		return TagNumber
	case cats&ALPHA != 0:
		return TagLatin
	}
	return ""
}

func searchQuery(s []byte) []byte {
	query := make([]byte, 0, len(s)+1)
	query = append(query, s...)
	return append(query, KeySeparator)
}

// LookupWordForm decodes every "<form> <paradigm> <form index>" key of the
// normalized word into a lemma and tag.
func (lex *Lexicon) LookupWordForm(normalized []byte) ([]Candidate, error) {
	var cands []Candidate
	it := lex.words.PredictiveSearch(searchQuery(normalized))
	for it.Next() {
		paradigmID, formIndex, err := decodeKeyFields(it.Remainder())
		if err != nil {
			return nil, fmt.Errorf("key %q: %s: %w", it.Key(), err, ErrCorruptedDictionary)
		}
		cand, err := lex.decodeWordForm(normalized, paradigmID, formIndex)
		if err != nil {
			return nil, fmt.Errorf("key %q: %s: %w", it.Key(), err, ErrCorruptedDictionary)
		}
		cands = append(cands, cand)
	}
	return cands, nil
}

func (lex *Lexicon) decodeWordForm(normalized []byte, paradigmID, formIndex int) (Candidate, error) {
	t := lex.tables
	if paradigmID >= len(t.Paradigms) {
		return Candidate{}, fmt.Errorf("paradigm %d out of range", paradigmID)
	}
	p := t.Paradigms[paradigmID]
	if formIndex >= p.Len() {
		return Candidate{}, fmt.Errorf("form %d out of range of paradigm %d", formIndex, paradigmID)
	}

	suffix := t.Suffixes[p.Suffix(formIndex)]
	prefix := t.Prefixes[p.Prefix(formIndex)]
	if len(prefix)+len(suffix) > len(normalized) {
		return Candidate{}, fmt.Errorf("affixes of form %d are longer than the word", formIndex)
	}
	stem := normalized[len(prefix) : len(normalized)-len(suffix)]

	lemmaPrefix := t.Prefixes[p.Prefix(0)]
	lemmaSuffix := t.Suffixes[p.Suffix(0)]
	lemma := make([]byte, 0, len(lemmaPrefix)+len(stem)+len(lemmaSuffix))
	lemma = append(lemma, lemmaPrefix...)
	lemma = append(lemma, stem...)
	lemma = append(lemma, lemmaSuffix...)

	return Candidate{
		Lemma:  string(lemma),
		Tag:    t.Tags[p.Tag(formIndex)],
		Weight: 1,
	}, nil
}

// LookupSuffix decodes every "<suffix> <tag> <count>" key of suffix. The
// candidates keep word as their lemma.
func (lex *Lexicon) LookupSuffix(word string, suffix []byte) ([]Candidate, error) {
	if lex.ends == nil || len(suffix) == 0 {
		return nil, nil
	}
	var cands []Candidate
	it := lex.ends.PredictiveSearch(searchQuery(suffix))
	for it.Next() {
		tagID, count, err := decodeKeyFields(it.Remainder())
		if err != nil {
			return nil, fmt.Errorf("key %q: %s: %w", it.Key(), err, ErrCorruptedDictionary)
		}
		if tagID >= len(lex.tables.Tags) {
			return nil, fmt.Errorf("key %q: tag %d out of range: %w", it.Key(), tagID, ErrCorruptedDictionary)
		}
		weight := uint32(count)
		if weight == 0 {
			weight = 1
		}
		cands = append(cands, Candidate{
			Lemma:  word,
			Tag:    lex.tables.Tags[tagID],
			Weight: weight,
		})
	}
	return cands, nil
}

// decodeKeyFields parses the two non-negative integers after the word part
// of a key.
func decodeKeyFields(remainder []byte) (int, int, error) {
	fields := bytes.Fields(remainder)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	first, err := strconv.ParseUint(string(fields[0]), 10, 31)
	if err != nil {
		return 0, 0, err
	}
	second, err := strconv.ParseUint(string(fields[1]), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return int(first), int(second), nil
}

// WalkWordForms calls fn with the word form and the decoded candidate of
// every key of the word form index, in key order.
func (lex *Lexicon) WalkWordForms(fn func(form string, cand Candidate) error) error {
	it := lex.words.PredictiveSearch(nil)
	for it.Next() {
		key := it.Key()
		i := bytes.IndexByte(key, KeySeparator)
		if i <= 0 {
			return fmt.Errorf("key %q: missing word form: %w", key, ErrCorruptedDictionary)
		}
		paradigmID, formIndex, err := decodeKeyFields(key[i+1:])
		if err != nil {
			return fmt.Errorf("key %q: %s: %w", key, err, ErrCorruptedDictionary)
		}
		cand, err := lex.decodeWordForm(key[:i], paradigmID, formIndex)
		if err != nil {
			return fmt.Errorf("key %q: %s: %w", key, err, ErrCorruptedDictionary)
		}
		if err := fn(string(key[:i]), cand); err != nil {
			return err
		}
	}
	return nil
}

// WalkEndings calls fn for every key of the suffix statistics index. The
// candidate lemma is the suffix and its weight is the stored count.
func (lex *Lexicon) WalkEndings(fn func(suffix string, cand Candidate) error) error {
	if lex.ends == nil {
		return nil
	}
	it := lex.ends.PredictiveSearch(nil)
	for it.Next() {
		key := it.Key()
		i := bytes.IndexByte(key, KeySeparator)
		if i <= 0 {
			return fmt.Errorf("key %q: missing suffix: %w", key, ErrCorruptedDictionary)
		}
		tagID, count, err := decodeKeyFields(key[i+1:])
		if err != nil {
			return fmt.Errorf("key %q: %s: %w", key, err, ErrCorruptedDictionary)
		}
		if tagID >= len(lex.tables.Tags) {
			return fmt.Errorf("key %q: tag %d out of range: %w", key, tagID, ErrCorruptedDictionary)
		}
		suffix := string(key[:i])
		cand := Candidate{Lemma: suffix, Tag: lex.tables.Tags[tagID], Weight: uint32(count)}
		if err := fn(suffix, cand); err != nil {
			return err
		}
	}
	return nil
}

// Verify decodes every key of both indexes.
func (lex *Lexicon) Verify() error {
	nop := func(string, Candidate) error { return nil }
	if err := lex.WalkWordForms(nop); err != nil {
		return err
	}
	// word form keys read as suffix statistics are checked at lookup time
	if lex.ends == lex.words {
		return nil
	}
	return lex.WalkEndings(nop)
}
