package dictionary

import (
	"io"
	"strings"
	"testing"
)

const testLemmas = `# lemma paradigm
КОШКА 0
мама 0
ПИЛА 0
КОТ 1
ЛУЧШИЙ 2
ПИТЬ 3
ЁЖ 1
`

const testEnds = `ОСТ 2 3
ОСТ 0 9
ОСТ 0 0
ЦЫЯ 0 0
`

func testTables() *Tables {
	return &Tables{
		Prefixes: []string{"", "НАИ"},
		Suffixes: []string{"", "А", "Ы", "ИЙ", "ТЬ", "ЛА"},
		Tags: []string{
			"N,f,sg",
			"N,f,pl",
			"N,m,sg",
			"N,m,gent",
			"ADJ",
			"ADJ,supr",
			"V,inf",
			"V,past",
		},
		Paradigms: []Paradigm{
			NewParadigm([]Form{{0, 1, 0}, {0, 2, 1}}),
			NewParadigm([]Form{{0, 0, 2}, {0, 1, 3}}),
			NewParadigm([]Form{{0, 3, 4}, {1, 3, 5}}),
			NewParadigm([]Form{{0, 4, 6}, {0, 5, 7}}),
		},
	}
}

func newTestBuilder(t *testing.T) *DictionaryBuilder {
	t.Helper()
	dicbuilder, err := NewDictionaryBuilder(testTables())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dicbuilder.SetOutput(io.Discard)
	err = dicbuilder.BuildLexicon(strings.NewReader(testLemmas))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = dicbuilder.BuildEnds(strings.NewReader(testEnds))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = dicbuilder.BuildIndexes(1600000000, "test dictionary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dicbuilder
}

func newTestLexicon(t *testing.T) *Lexicon {
	t.Helper()
	dicbuilder := newTestBuilder(t)
	category, err := DefaultCharacterCategory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewLexicon(dicbuilder.words, dicbuilder.ends, dicbuilder.tables, category)
}

func writeTestDictionary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := newTestBuilder(t).Write(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dir
}
