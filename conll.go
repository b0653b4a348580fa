package gomorphtag

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitTag splits a tag at its first comma into the part of speech and the
// "|" joined features, "_" when there are none.
func SplitTag(tag string) (pos string, feats string) {
	fields := strings.Split(tag, ",")
	pos = fields[0]
	if len(fields) == 1 {
		return pos, "_"
	}
	return pos, strings.Join(fields[1:], "|")
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// ChopPunct removes one trailing punctuation character from a word that
// does not start with punctuation.
func ChopPunct(word string) string {
	first, _ := utf8.DecodeRuneInString(word)
	if isPunct(first) {
		return word
	}
	last, size := utf8.DecodeLastRuneInString(word)
	if size > 0 && isPunct(last) {
		return word[:len(word)-size]
	}
	return word
}

// Mark tags the words read from r and writes one CoNLL line per word to w:
// id, word, lemma, part of speech twice, features and four empty columns.
// The first field of each line is the word. Blank lines and ModelSentinel
// lines separate sentences, which are written separated by a blank line.
func (m *Model) Mark(r io.Reader, w io.Writer) error {
	bwriter := bufio.NewWriter(w)
	cr := NewCorpusReader(r, "")
	predictor := NewPredictor(m)

	id := 0
	for {
		line, err := cr.r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if isSentenceBoundary(line) {
			if id > 0 {
				if err := bwriter.WriteByte('\n'); err != nil {
					return err
				}
			}
			id = 0
			predictor.Reset()
			continue
		}

		word := ChopPunct(strings.Fields(string(line))[0])
		cand, err := predictor.Predict(word)
		if err != nil {
			return fmt.Errorf("line %d: %w", cr.NumLine(), err)
		}
		id++
		pos, feats := SplitTag(cand.Tag)
		_, err = fmt.Fprintf(bwriter, "%d\t%s\t%s\t%s\t%s\t%s\t_\t_\t_\t_\n", id, word, cand.Lemma, pos, pos, feats)
		if err != nil {
			return err
		}
	}
	return bwriter.Flush()
}
