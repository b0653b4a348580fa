package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/msnoigrs/gomorphtag/internal/lnreader"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func compareBytes(a, b interface{}) int {
	l, _ := a.([]byte)
	r, _ := b.([]byte)
	min := len(l)
	if min > len(r) {
		min = len(r)
	}
	for i := 0; i < min; i++ {
		if l[i] != r[i] {
			return (int(l[i]) & 0xff) - (int(r[i]) & 0xff)
		}
	}
	return len(l) - len(r)
}

// DictionaryBuilder compiles lemma lists and suffix statistics into a
// dictionary directory.
type DictionaryBuilder struct {
	tables   *Tables
	wordKeys *redblacktree.Tree
	// "<suffix> <tag id>" -> accumulated count
	endings *redblacktree.Tree
	words   *TrieIndex
	ends    *TrieIndex
	log     io.Writer

	NumLemmas int
}

// NewDictionaryBuilder validates tables before any key is added.
func NewDictionaryBuilder(tables *Tables) (*DictionaryBuilder, error) {
	err := tables.Validate()
	if err != nil {
		return nil, err
	}
	return &DictionaryBuilder{
		tables:   tables,
		wordKeys: redblacktree.NewWith(compareBytes),
		endings:  redblacktree.NewWith(compareBytes),
		log:      os.Stderr,
	}, nil
}

// SetOutput sets the destination of progress messages.
func (dicbuilder *DictionaryBuilder) SetOutput(w io.Writer) {
	dicbuilder.log = w
}

func (dicbuilder *DictionaryBuilder) NumWordForms() int {
	return dicbuilder.wordKeys.Size()
}

func (dicbuilder *DictionaryBuilder) NumEndings() int {
	return dicbuilder.endings.Size()
}

func checkKeyPart(s []byte) error {
	if len(s) == 0 {
		return fmt.Errorf("empty key")
	}
	for _, c := range s {
		if c <= KeySeparator {
			return fmt.Errorf("%q contains a space or control character", s)
		}
	}
	return nil
}

// AddWordForm adds the key of one form of a paradigm.
func (dicbuilder *DictionaryBuilder) AddWordForm(form string, paradigmID, formIndex int) error {
	if paradigmID < 0 || paradigmID >= len(dicbuilder.tables.Paradigms) {
		return fmt.Errorf("paradigm %d out of range", paradigmID)
	}
	if formIndex < 0 || formIndex >= dicbuilder.tables.Paradigms[paradigmID].Len() {
		return fmt.Errorf("form %d out of range of paradigm %d", formIndex, paradigmID)
	}
	normalized := NormalizeWord([]byte(form))
	if err := checkKeyPart(normalized); err != nil {
		return err
	}

	key := make([]byte, 0, len(normalized)+16)
	key = append(key, normalized...)
	key = append(key, KeySeparator)
	key = strconv.AppendInt(key, int64(paradigmID), 10)
	key = append(key, KeySeparator)
	key = strconv.AppendInt(key, int64(formIndex), 10)
	dicbuilder.wordKeys.Put(key, nil)
	return nil
}

// AddLemma adds every form of paradigmID generated from lemma. The lemma
// must carry the affixes of form 0.
func (dicbuilder *DictionaryBuilder) AddLemma(lemma string, paradigmID int) error {
	t := dicbuilder.tables
	if paradigmID < 0 || paradigmID >= len(t.Paradigms) {
		return fmt.Errorf("paradigm %d out of range", paradigmID)
	}
	p := t.Paradigms[paradigmID]
	normalized := NormalizeWord([]byte(lemma))

	prefix0 := NormalizeWord([]byte(t.Prefixes[p.Prefix(0)]))
	suffix0 := NormalizeWord([]byte(t.Suffixes[p.Suffix(0)]))
	if len(prefix0)+len(suffix0) > len(normalized) ||
		!bytes.HasPrefix(normalized, prefix0) ||
		!bytes.HasSuffix(normalized, suffix0) {
		return fmt.Errorf("%s does not match the lemma form of paradigm %d", lemma, paradigmID)
	}
	stem := normalized[len(prefix0) : len(normalized)-len(suffix0)]

	for n := 0; n < p.Len(); n++ {
		form := t.Prefixes[p.Prefix(n)] + string(stem) + t.Suffixes[p.Suffix(n)]
		err := dicbuilder.AddWordForm(form, paradigmID, n)
		if err != nil {
			return fmt.Errorf("%s: form %d: %s", lemma, n, err)
		}
	}
	dicbuilder.NumLemmas++
	return nil
}

// AddEnding accumulates count for the suffix and tag.
func (dicbuilder *DictionaryBuilder) AddEnding(suffix string, tagID int, count uint32) error {
	if tagID < 0 || tagID >= len(dicbuilder.tables.Tags) {
		return fmt.Errorf("tag %d out of range", tagID)
	}
	normalized := NormalizeWord([]byte(suffix))
	if err := checkKeyPart(normalized); err != nil {
		return err
	}

	key := make([]byte, 0, len(normalized)+8)
	key = append(key, normalized...)
	key = append(key, KeySeparator)
	key = strconv.AppendInt(key, int64(tagID), 10)

	var total uint32
	if v, ok := dicbuilder.endings.Get(key); ok {
		total, _ = v.(uint32)
	}
	if total+count < total {
		return fmt.Errorf("count of %s overflows", key)
	}
	dicbuilder.endings.Put(key, total+count)
	return nil
}

// BuildLexicon reads "LEMMA paradigm_id" lines.
func (dicbuilder *DictionaryBuilder) BuildLexicon(input io.Reader) error {
	r := lnreader.NewLineNumberReader(input)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if lnreader.IsSkipLine(line) {
			continue
		}
		cols := strings.Fields(string(line))
		if len(cols) != 2 {
			return fmt.Errorf("invalid format at line %d: columns length must be 2", r.NumLine)
		}
		paradigmID, err := strconv.Atoi(cols[1])
		if err != nil {
			return fmt.Errorf("%s: column 1 at line %d", err, r.NumLine)
		}
		err = dicbuilder.AddLemma(cols[0], paradigmID)
		if err != nil {
			return fmt.Errorf("%s at line %d", err, r.NumLine)
		}
	}
	return nil
}

// BuildEnds reads "SUFFIX tag_id count" lines.
func (dicbuilder *DictionaryBuilder) BuildEnds(input io.Reader) error {
	r := lnreader.NewLineNumberReader(input)
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if lnreader.IsSkipLine(line) {
			continue
		}
		cols := strings.Fields(string(line))
		if len(cols) != 3 {
			return fmt.Errorf("invalid format at line %d: columns length must be 3", r.NumLine)
		}
		tagID, err := strconv.Atoi(cols[1])
		if err != nil {
			return fmt.Errorf("%s: column 1 at line %d", err, r.NumLine)
		}
		count, err := strconv.ParseUint(cols[2], 10, 32)
		if err != nil {
			return fmt.Errorf("%s: column 2 at line %d", err, r.NumLine)
		}
		err = dicbuilder.AddEnding(cols[0], tagID, uint32(count))
		if err != nil {
			return fmt.Errorf("%s at line %d", err, r.NumLine)
		}
	}
	return nil
}

func treeKeys(tree *redblacktree.Tree) [][]byte {
	keys := make([][]byte, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		k, _ := it.Key().([]byte)
		keys = append(keys, k)
	}
	return keys
}

func (dicbuilder *DictionaryBuilder) buildTrie(name string, header *DictionaryHeader, keys [][]byte) (*TrieIndex, error) {
	p := message.NewPrinter(language.English)
	p.Fprintf(dicbuilder.log, "building the %s (%d keys)...", name, len(keys))
	ti, err := BuildTrieIndex(header, keys)
	if err != nil {
		fmt.Fprintln(dicbuilder.log)
		return nil, err
	}
	p.Fprintf(dicbuilder.log, " %d units\n", ti.Length())
	return ti, nil
}

// BuildIndexes builds both tries from the keys added so far.
func (dicbuilder *DictionaryBuilder) BuildIndexes(createTime int64, description string) error {
	words, err := dicbuilder.buildTrie(
		TrieTypeName(WordsTrieVersion),
		NewDictionaryHeader(WordsTrieVersion, createTime, description),
		treeKeys(dicbuilder.wordKeys),
	)
	if err != nil {
		return err
	}

	// the count is appended after the aggregation, so keys are sorted again
	endKeys := redblacktree.NewWith(compareBytes)
	it := dicbuilder.endings.Iterator()
	for it.Next() {
		k, _ := it.Key().([]byte)
		count, _ := it.Value().(uint32)
		key := append(append([]byte(nil), k...), KeySeparator)
		key = strconv.AppendUint(key, uint64(count), 10)
		endKeys.Put(key, nil)
	}
	ends, err := dicbuilder.buildTrie(
		TrieTypeName(EndsTrieVersion),
		NewDictionaryHeader(EndsTrieVersion, createTime, description),
		treeKeys(endKeys),
	)
	if err != nil {
		return err
	}

	dicbuilder.words = words
	dicbuilder.ends = ends
	return nil
}

// Write stores a complete dictionary directory. BuildIndexes must have been
// called.
func (dicbuilder *DictionaryBuilder) Write(dir string) error {
	if dicbuilder.words == nil || dicbuilder.ends == nil {
		return fmt.Errorf("indexes are not built")
	}
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	writeFile := func(name string, write func(w io.Writer) error) error {
		path := filepath.Join(dir, name)
		fmt.Fprintf(dicbuilder.log, "writing %s...", name)
		fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		err = write(fd)
		if err != nil {
			fd.Close()
			return fmt.Errorf("%s: %s", path, err)
		}
		finfo, err := fd.Stat()
		if err == nil {
			p.Fprintf(dicbuilder.log, " %d bytes\n", finfo.Size())
		}
		return fd.Close()
	}
	writeTrie := func(ti *TrieIndex) func(w io.Writer) error {
		return func(w io.Writer) error {
			_, err := ti.WriteTo(w)
			return err
		}
	}
	writeTable := func(table []string) func(w io.Writer) error {
		return func(w io.Writer) error {
			return WriteStringTable(w, table)
		}
	}

	t := dicbuilder.tables
	files := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{WordsTrieFile, writeTrie(dicbuilder.words)},
		{EndsTrieFile, writeTrie(dicbuilder.ends)},
		{PrefixesFile, writeTable(t.Prefixes)},
		{SuffixesFile, writeTable(t.Suffixes)},
		{TagsFile, writeTable(t.Tags)},
		{ParadigmsFile, func(w io.Writer) error { return WriteParadigms(w, t.Paradigms) }},
	}
	for _, f := range files {
		err = writeFile(f.name, f.write)
		if err != nil {
			return err
		}
	}
	return nil
}
