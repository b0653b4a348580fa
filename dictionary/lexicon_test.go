package dictionary

import (
	"errors"
	"reflect"
	"testing"
)

func TestLookup(t *testing.T) {
	lex := newTestLexicon(t)

	tests := []struct {
		name     string
		word     string
		expected []Candidate
	}{
		{"lemma form", "кошка", []Candidate{{"КОШКА", "N,f,sg", 1}}},
		{"inflected form", "КОШКЫ", []Candidate{{"КОШКА", "N,f,pl", 1}}},
		{"lowercase lemma source", "МАМЫ", []Candidate{{"МАМА", "N,f,pl", 1}}},
		{"empty suffix", "Кот", []Candidate{{"КОТ", "N,m,sg", 1}}},
		{"prefix", "наилучший", []Candidate{{"ЛУЧШИЙ", "ADJ,supr", 1}}},
		{"yo folding", "ёжа", []Candidate{{"ЕЖ", "N,m,gent", 1}}},
		{"ambiguous", "пила", []Candidate{
			{"ПИЛА", "N,f,sg", 1},
			{"ПИТЬ", "V,past", 1},
		}},
		{"punctuation", ",", []Candidate{{",", TagPunct, 1}}},
		{"symbol", "«ёлка»", []Candidate{{"«ёлка»", TagPunct, 1}}},
		{"number", "42", []Candidate{{"42", TagNumber, 1}}},
		{"latin", "Moscow", []Candidate{{"Moscow", TagLatin, 1}}},
		{"suffix statistics", "мост", []Candidate{
			{"мост", "N,f,sg", 9},
			{"мост", "N,m,sg", 3},
		}},
		{"zero count", "станцыя", []Candidate{{"станцыя", "N,f,sg", 1}}},
		{"unknown", "щщщщ", []Candidate{{"щщщщ", TagUnknown, 1}}},
		{"short unknown", "ю", []Candidate{{"ю", TagUnknown, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lex.Lookup(tt.word)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestLookupEmptyWord(t *testing.T) {
	lex := newTestLexicon(t)
	_, err := lex.Lookup("")
	if !errors.Is(err, ErrEmptyWord) {
		t.Errorf("got %v, expected %v", err, ErrEmptyWord)
	}
}

func TestLookupCache(t *testing.T) {
	lex := newTestLexicon(t)
	err := lex.SetCacheSize(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := lex.Lookup("пила")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0].Tag = "changed"

	second, err := lex.Lookup("пила")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0].Tag != "N,f,sg" {
		t.Errorf("got %v, expected N,f,sg", second[0].Tag)
	}
	if lex.cache.Len() != 1 {
		t.Errorf("got %v, expected 1", lex.cache.Len())
	}

	if err := lex.SetCacheSize(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lex.cache != nil {
		t.Errorf("cache is not disabled")
	}
}

func TestLookupCorruptedKeys(t *testing.T) {
	tables := testTables()
	category, err := DefaultCharacterCategory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		key  string
		word string
	}{
		{"non integer", "КОТ x 0", "кот"},
		{"negative", "КОТ -1 0", "кот"},
		{"missing field", "КОТ 1", "кот"},
		{"extra field", "КОТ 1 0 0", "кот"},
		{"paradigm out of range", "КОТ 9 0", "кот"},
		{"form out of range", "КОТ 1 5", "кот"},
		{"affixes too long", "Я 3 0", "я"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewDictionaryHeader(WordsTrieVersion, 0, "")
			words, err := BuildTrieIndex(header, [][]byte{[]byte(tt.key)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			lex := NewLexicon(words, nil, tables, category)

			_, err = lex.Lookup(tt.word)
			if !errors.Is(err, ErrCorruptedDictionary) {
				t.Errorf("got %v, expected %v", err, ErrCorruptedDictionary)
			}
			err = lex.Verify()
			if !errors.Is(err, ErrCorruptedDictionary) {
				t.Errorf("got %v, expected %v", err, ErrCorruptedDictionary)
			}
		})
	}
}

func TestLookupCorruptedEnding(t *testing.T) {
	tables := testTables()
	words, err := BuildTrieIndex(NewDictionaryHeader(WordsTrieVersion, 0, ""), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ends, err := BuildTrieIndex(NewDictionaryHeader(EndsTrieVersion, 0, ""), [][]byte{[]byte("ОСТ 99 1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lex := NewLexicon(words, ends, tables, nil)

	_, err = lex.Lookup("мост")
	if !errors.Is(err, ErrCorruptedDictionary) {
		t.Errorf("got %v, expected %v", err, ErrCorruptedDictionary)
	}
	if err := lex.Verify(); !errors.Is(err, ErrCorruptedDictionary) {
		t.Errorf("got %v, expected %v", err, ErrCorruptedDictionary)
	}
}

func TestVerify(t *testing.T) {
	lex := newTestLexicon(t)
	if err := lex.Verify(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWalkWordForms(t *testing.T) {
	lex := newTestLexicon(t)
	var forms []string
	err := lex.WalkWordForms(func(form string, cand Candidate) error {
		forms = append(forms, form+" "+cand.Lemma+" "+cand.Tag)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{
		"ЕЖ ЕЖ N,m,sg",
		"ЕЖА ЕЖ N,m,gent",
		"КОТ КОТ N,m,sg",
		"КОТА КОТ N,m,gent",
		"КОШКА КОШКА N,f,sg",
		"КОШКЫ КОШКА N,f,pl",
		"ЛУЧШИЙ ЛУЧШИЙ ADJ",
		"МАМА МАМА N,f,sg",
		"МАМЫ МАМА N,f,pl",
		"НАИЛУЧШИЙ ЛУЧШИЙ ADJ,supr",
		"ПИЛА ПИЛА N,f,sg",
		"ПИЛА ПИТЬ V,past",
		"ПИЛЫ ПИЛА N,f,pl",
		"ПИТЬ ПИТЬ V,inf",
	}
	if !reflect.DeepEqual(forms, expected) {
		t.Errorf("got %v, expected %v", forms, expected)
	}
}

func TestIsUnambiguous(t *testing.T) {
	for _, tag := range []string{TagPunct, TagNumber, TagLatin, TagUnknown} {
		if !IsUnambiguous(tag) {
			t.Errorf("%s is not unambiguous", tag)
		}
	}
	if IsUnambiguous("N,f,sg") {
		t.Errorf("N,f,sg is unambiguous")
	}
}
