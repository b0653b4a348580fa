package gomorphtag

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"sync/atomic"

	"github.com/msnoigrs/gomorphtag/dictionary"
	"golang.org/x/text/encoding/charmap"
)

// NoneTag is the previous tag at the start of a sentence.
const NoneTag = "NONE"

// Analyzer returns the candidate analyses of a word, never an empty list
// without an error.
type Analyzer interface {
	Lookup(word string) ([]dictionary.Candidate, error)
}

// Model ranks the analyses of a word by how often their tags followed the
// previous tag in a training corpus.
type Model struct {
	analyzer      Analyzer
	dict          *dictionary.Dictionary
	pairs         *TagPairTable
	modelEncoding string
	tokens        atomic.Uint64
}

// NewModel loads the dictionary directory dictDir with default options.
func NewModel(dictDir string) (*Model, error) {
	config := NewBaseConfig()
	config.Dictionary = dictDir
	return NewModelWithConfig(config)
}

func NewModelWithConfig(config *BaseConfig) (*Model, error) {
	dict, err := dictionary.LoadDictionary(config.Dictionary, config.DictionaryConfig())
	if err != nil {
		return nil, fmt.Errorf("fail to read a dictionary: %w", err)
	}
	m := NewModelWithAnalyzer(dict)
	m.dict = dict
	m.modelEncoding = config.ModelEncoding
	return m, nil
}

// NewModelWithAnalyzer returns an untrained model over analyzer.
func NewModelWithAnalyzer(analyzer Analyzer) *Model {
	return &Model{
		analyzer: analyzer,
		pairs:    NewTagPairTable(),
	}
}

func (m *Model) Pairs() *TagPairTable {
	return m.pairs
}

// Tokens is the number of tokens counted by training.
func (m *Model) Tokens() uint64 {
	return m.tokens.Load()
}

// Rank chooses among cands, which must not be empty. A first candidate of
// an unambiguous class is returned as is. Otherwise the candidate with the
// strictly greatest weight times the count of (prevTag, tag) wins, and ties
// keep the earliest candidate.
func (m *Model) Rank(prevTag string, cands []dictionary.Candidate) dictionary.Candidate {
	best := 0
	if dictionary.IsUnambiguous(cands[best].Tag) {
		return cands[best]
	}
	bestScore := uint64(cands[best].Weight) * m.pairs.Count(prevTag, cands[best].Tag)
	for i := 1; i < len(cands); i++ {
		score := uint64(cands[i].Weight) * m.pairs.Count(prevTag, cands[i].Tag)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return cands[best]
}

// Predict looks word up and ranks its analyses after prevTag.
func (m *Model) Predict(prevTag, word string) (dictionary.Candidate, error) {
	cands, err := m.analyzer.Lookup(word)
	if err != nil {
		return dictionary.Candidate{}, err
	}
	if len(cands) == 0 {
		return dictionary.Candidate{Lemma: word, Tag: dictionary.TagUnknown, Weight: 1}, nil
	}
	return m.Rank(prevTag, cands), nil
}

// Train counts the tag pairs of a "word lemma tag" corpus.
func (m *Model) Train(r io.Reader) error {
	return m.train(NewCorpusReader(r, ""))
}

func (m *Model) TrainFile(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	return m.train(NewCorpusReader(fd, filename))
}

func (m *Model) train(cr *CorpusReader) error {
	prevTag := NoneTag
	for {
		token, boundary, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if boundary {
			prevTag = NoneTag
			continue
		}
		m.pairs.Add(prevTag, token.Tag, 1)
		m.tokens.Add(1)
		prevTag = token.Tag
	}
}

// Evaluation is the result of replaying a gold corpus.
type Evaluation struct {
	// Total counts the scored tokens.
	Total int
	Wrong int
	// Skipped counts tokens with an unambiguous prediction or an UNKN gold
	// tag.
	Skipped int
}

// Accuracy is NaN when nothing was scored.
func (e *Evaluation) Accuracy() float64 {
	if e.Total == 0 {
		return math.NaN()
	}
	return float64(e.Total-e.Wrong) / float64(e.Total)
}

// Evaluate predicts every token of a gold corpus from the previously
// predicted tag and writes "word : gold != predicted" for each mismatch to
// out. A token with an ambiguous prediction and the gold tag UNKN is skipped
// without becoming the previous tag.
func (m *Model) Evaluate(r io.Reader, out io.Writer) (*Evaluation, error) {
	return m.evaluate(NewCorpusReader(r, ""), out)
}

func (m *Model) evaluate(cr *CorpusReader, out io.Writer) (*Evaluation, error) {
	eval := &Evaluation{}
	prevTag := NoneTag
	for {
		token, boundary, err := cr.Read()
		if err == io.EOF {
			return eval, nil
		}
		if err != nil {
			return eval, err
		}
		if boundary {
			prevTag = NoneTag
			continue
		}

		predicted, err := m.Predict(prevTag, token.Word)
		if err != nil {
			return eval, fmt.Errorf("line %d: %w", cr.NumLine(), err)
		}
		if dictionary.IsUnambiguous(predicted.Tag) {
			eval.Skipped++
			prevTag = predicted.Tag
			continue
		}
		if token.Tag == dictionary.TagUnknown {
			eval.Skipped++
			continue
		}
		eval.Total++
		if token.Tag != predicted.Tag {
			eval.Wrong++
			_, err = fmt.Fprintf(out, "%s : %s != %s\n", token.Word, token.Tag, predicted.Tag)
			if err != nil {
				return eval, err
			}
		}
		prevTag = predicted.Tag
	}
}

// Test returns the accuracy of Evaluate. It returns ErrNoScorableTokens
// and NaN when no token was scored.
func (m *Model) Test(r io.Reader, out io.Writer) (float64, error) {
	eval, err := m.Evaluate(r, out)
	return testResult(eval, err)
}

func (m *Model) TestFile(filename string, out io.Writer) (float64, error) {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return math.NaN(), err
	}
	defer fd.Close()
	eval, err := m.evaluate(NewCorpusReader(fd, filename), out)
	if err == nil && eval.Total == 0 {
		err = fmt.Errorf("%s: %w", filename, ErrNoScorableTokens)
	}
	return testResult(eval, err)
}

func testResult(eval *Evaluation, err error) (float64, error) {
	if err != nil {
		return math.NaN(), err
	}
	if eval.Total == 0 {
		return math.NaN(), ErrNoScorableTokens
	}
	return eval.Accuracy(), nil
}

// Save writes the tag pair table.
func (m *Model) Save(w io.Writer) error {
	return m.pairs.Save(w)
}

func (m *Model) SaveFile(filename string) error {
	fd, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	err = m.Save(fd)
	if err != nil {
		fd.Close()
		return fmt.Errorf("%s: %s", filename, err)
	}
	return fd.Close()
}

// Load replaces the tag pair table with the one read from r. The current
// table is kept when r is malformed.
func (m *Model) Load(r io.Reader) error {
	if m.modelEncoding == ModelEncodingCP1251 {
		r = charmap.Windows1251.NewDecoder().Reader(r)
	}
	pairs, err := LoadTagPairTable(r)
	if err != nil {
		return err
	}
	m.pairs.replace(pairs)
	return nil
}

func (m *Model) LoadFile(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	err = m.Load(fd)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// SetModelEncoding selects the encoding Load decodes from.
func (m *Model) SetModelEncoding(encoding string) {
	m.modelEncoding = encoding
}

// Print writes "prev before cur : count" for every pair and then the total
// count of every previous tag.
func (m *Model) Print(out io.Writer) error {
	for _, t := range m.pairs.Triples() {
		_, err := fmt.Fprintf(out, "%s before %s : %d\n", t.Prev, t.Cur, t.Count)
		if err != nil {
			return err
		}
	}

	totals := m.pairs.Totals()
	prevs := make([]string, 0, len(totals))
	for prev := range totals {
		prevs = append(prevs, prev)
	}
	sort.Strings(prevs)
	for _, prev := range prevs {
		_, err := fmt.Fprintf(out, "%s %d\n", prev, totals[prev])
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases the dictionary opened by NewModel.
func (m *Model) Close() error {
	if m.dict == nil {
		return nil
	}
	err := m.dict.Close()
	m.dict = nil
	return err
}
