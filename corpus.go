package gomorphtag

import (
	"fmt"
	"io"
	"strings"

	"github.com/msnoigrs/gomorphtag/internal/lnreader"
)

// CorpusToken is one "word lemma tag" line of a gold corpus.
type CorpusToken struct {
	Word  string
	Lemma string
	Tag   string
}

// CorpusReader reads a one-token-per-line corpus. A blank line or a
// ModelSentinel line is a sentence boundary.
type CorpusReader struct {
	r    *lnreader.LineNumberReader
	name string
}

// NewCorpusReader reads from r. name prefixes error messages.
func NewCorpusReader(r io.Reader, name string) *CorpusReader {
	return &CorpusReader{
		r:    lnreader.NewLineNumberReader(r),
		name: name,
	}
}

func (cr *CorpusReader) NumLine() int {
	return cr.r.NumLine
}

// isSentenceBoundary accepts any Unicode white space as blank.
func isSentenceBoundary(line []byte) bool {
	fields := strings.Fields(string(line))
	return len(fields) == 0 || (len(fields) == 1 && fields[0] == ModelSentinel)
}

// Read returns the next token, or boundary set for a sentence boundary line.
// It returns io.EOF at the end of input.
func (cr *CorpusReader) Read() (token CorpusToken, boundary bool, err error) {
	line, err := cr.r.ReadLine()
	if err != nil {
		return token, false, err
	}
	if isSentenceBoundary(line) {
		return token, true, nil
	}
	cols := strings.Fields(string(line))
	if len(cols) != 3 {
		return token, false, cr.errorf("invalid format at line %d: columns length must be 3", cr.r.NumLine)
	}
	token.Word = cols[0]
	token.Lemma = cols[1]
	token.Tag = cols[2]
	return token, false, nil
}

func (cr *CorpusReader) errorf(format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	if cr.name != "" {
		msg = cr.name + ": " + msg
	}
	return fmt.Errorf("%s: %w", msg, ErrCorruptedCorpus)
}
