package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Form is one inflected form of a paradigm: indices into the prefix, suffix
// and tag tables.
type Form struct {
	Prefix int
	Suffix int
	Tag    int
}

// Paradigm is an inflection class. Form 0 is the lemma form.
type Paradigm struct {
	forms []Form
}

func NewParadigm(forms []Form) Paradigm {
	return Paradigm{forms: append([]Form(nil), forms...)}
}

func (p Paradigm) Len() int {
	return len(p.forms)
}

func (p Paradigm) Form(n int) Form {
	return p.forms[n]
}

func (p Paradigm) Prefix(n int) int {
	return p.forms[n].Prefix
}

func (p Paradigm) Suffix(n int) int {
	return p.forms[n].Suffix
}

func (p Paradigm) Tag(n int) int {
	return p.forms[n].Tag
}

func (p Paradigm) validate(numPrefixes, numSuffixes, numTags int) error {
	if len(p.forms) == 0 {
		return fmt.Errorf("paradigm has no forms")
	}
	for n, f := range p.forms {
		if f.Prefix < 0 || f.Prefix >= numPrefixes {
			return fmt.Errorf("form %d: prefix index %d out of range", n, f.Prefix)
		}
		if f.Suffix < 0 || f.Suffix >= numSuffixes {
			return fmt.Errorf("form %d: suffix index %d out of range", n, f.Suffix)
		}
		if f.Tag < 0 || f.Tag >= numTags {
			return fmt.Errorf("form %d: tag index %d out of range", n, f.Tag)
		}
	}
	return nil
}

// capHint bounds a preallocation taken from a count read from a file.
func capHint(n int) int {
	if n > maxCapHint {
		return maxCapHint
	}
	return n
}

const maxCapHint = 1 << 16

type tokenReader struct {
	s    *bufio.Scanner
	name string
	pos  int
}

func newTokenReader(r io.Reader, name string) *tokenReader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &tokenReader{s: s, name: name}
}

func (tr *tokenReader) readInt(what string) (int, error) {
	if !tr.s.Scan() {
		if err := tr.s.Err(); err != nil {
			return 0, fmt.Errorf("%s: %s", tr.name, err)
		}
		return 0, fmt.Errorf("%s: unexpected end of file reading %s: %w", tr.name, what, ErrCorruptedDictionary)
	}
	tr.pos++
	v, err := strconv.Atoi(tr.s.Text())
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: invalid %s %q at token %d: %w", tr.name, what, tr.s.Text(), tr.pos, ErrCorruptedDictionary)
	}
	return v, nil
}

// ReadParadigms reads a paradigm count followed by that many records. A
// record is its form count followed by one "prefix suffix tag" index triple
// per form.
func ReadParadigms(input io.Reader, name string) ([]Paradigm, error) {
	tr := newTokenReader(input, name)
	size, err := tr.readInt("paradigm count")
	if err != nil {
		return nil, err
	}

	paradigms := make([]Paradigm, 0, capHint(size))
	for len(paradigms) < size {
		numForms, err := tr.readInt("form count")
		if err != nil {
			return nil, err
		}
		forms := make([]Form, 0, capHint(numForms))
		for len(forms) < numForms {
			var f Form
			if f.Prefix, err = tr.readInt("prefix index"); err != nil {
				return nil, err
			}
			if f.Suffix, err = tr.readInt("suffix index"); err != nil {
				return nil, err
			}
			if f.Tag, err = tr.readInt("tag index"); err != nil {
				return nil, err
			}
			forms = append(forms, f)
		}
		paradigms = append(paradigms, Paradigm{forms: forms})
	}
	return paradigms, nil
}

func LoadParadigms(filename string) ([]Paradigm, error) {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadParadigms(fd, filename)
}

// WriteParadigms writes one record per line.
func WriteParadigms(writer io.Writer, paradigms []Paradigm) error {
	bwriter := bufio.NewWriter(writer)
	_, err := fmt.Fprintln(bwriter, len(paradigms))
	if err != nil {
		return err
	}
	for _, p := range paradigms {
		_, err = fmt.Fprint(bwriter, len(p.forms))
		if err != nil {
			return err
		}
		for _, f := range p.forms {
			_, err = fmt.Fprintf(bwriter, " %d %d %d", f.Prefix, f.Suffix, f.Tag)
			if err != nil {
				return err
			}
		}
		err = bwriter.WriteByte('\n')
		if err != nil {
			return err
		}
	}
	return bwriter.Flush()
}
