package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Files of a dictionary directory.
const (
	WordsTrieFile = "words.trie"
	EndsTrieFile  = "ends.trie"
	PrefixesFile  = "prefixes"
	SuffixesFile  = "suffixes"
	TagsFile      = "tags"
	ParadigmsFile = "paradigms"
)

const (
	SuffixIndexEnds  = "ends"
	SuffixIndexWords = "words"
)

var dictionaryFiles = []string{
	WordsTrieFile,
	EndsTrieFile,
	PrefixesFile,
	SuffixesFile,
	TagsFile,
	ParadigmsFile,
}

type DictionaryConfig struct {
	// SuffixIndex selects the index holding suffix statistics keys,
	// SuffixIndexEnds or SuffixIndexWords.
	SuffixIndex string
	// CharacterDefinitionFile replaces the built-in char.def when set.
	CharacterDefinitionFile string
	CacheSize               int
	// Verify decodes every key at load time.
	Verify bool
}

func NewDictionaryConfig() *DictionaryConfig {
	return &DictionaryConfig{
		SuffixIndex: SuffixIndexEnds,
		Verify:      true,
	}
}

// Dictionary is a loaded dictionary directory.
type Dictionary struct {
	Words   *TrieIndex
	Ends    *TrieIndex
	Lexicon *Lexicon
}

// LoadDictionary opens every artifact of dir. A missing file is reported as
// ErrMissingResource before anything is mapped.
func LoadDictionary(dir string, config *DictionaryConfig) (*Dictionary, error) {
	if config == nil {
		config = NewDictionaryConfig()
	}
	for _, name := range dictionaryFiles {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrMissingResource)
		}
		if err != nil {
			return nil, err
		}
	}

	tables, err := LoadTables(dir)
	if err != nil {
		return nil, err
	}

	var category *CharacterCategory
	if config.CharacterDefinitionFile != "" {
		category, err = LoadCharacterCategory(config.CharacterDefinitionFile)
	} else {
		category, err = DefaultCharacterCategory()
	}
	if err != nil {
		return nil, err
	}

	words, err := OpenTrieIndex(filepath.Join(dir, WordsTrieFile), WordsTrieVersion)
	if err != nil {
		return nil, err
	}
	ends, err := OpenTrieIndex(filepath.Join(dir, EndsTrieFile), EndsTrieVersion)
	if err != nil {
		_ = words.Close()
		return nil, err
	}
	dic := &Dictionary{
		Words: words,
		Ends:  ends,
	}

	var suffixIndex Index
	switch config.SuffixIndex {
	case "", SuffixIndexEnds:
		suffixIndex = ends
	case SuffixIndexWords:
		suffixIndex = words
	default:
		_ = dic.Close()
		return nil, fmt.Errorf("invalid suffix index %q", config.SuffixIndex)
	}

	dic.Lexicon = NewLexicon(words, suffixIndex, tables, category)
	err = dic.Lexicon.SetCacheSize(config.CacheSize)
	if err != nil {
		_ = dic.Close()
		return nil, err
	}

	if config.Verify {
		err = dic.Lexicon.Verify()
		if err != nil {
			_ = dic.Close()
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
	}
	return dic, nil
}

// LoadTables reads and validates the string tables and paradigms of dir.
func LoadTables(dir string) (*Tables, error) {
	var err error
	tables := &Tables{}
	tables.Prefixes, err = LoadStringTable(filepath.Join(dir, PrefixesFile))
	if err != nil {
		return nil, err
	}
	tables.Suffixes, err = LoadStringTable(filepath.Join(dir, SuffixesFile))
	if err != nil {
		return nil, err
	}
	tables.Tags, err = LoadStringTable(filepath.Join(dir, TagsFile))
	if err != nil {
		return nil, err
	}
	tables.Paradigms, err = LoadParadigms(filepath.Join(dir, ParadigmsFile))
	if err != nil {
		return nil, err
	}
	err = tables.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return tables, nil
}

func LoadCharacterCategory(filename string) (*CharacterCategory, error) {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	cat := NewCharacterCategory()
	err = cat.ReadCharacterDefinition(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", filename, err)
	}
	return cat, nil
}

func (dic *Dictionary) Lookup(word string) ([]Candidate, error) {
	return dic.Lexicon.Lookup(word)
}

func (dic *Dictionary) Close() error {
	var err error
	if dic.Words != nil {
		err = dic.Words.Close()
	}
	if dic.Ends != nil {
		if cerr := dic.Ends.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
