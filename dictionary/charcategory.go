package dictionary

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/msnoigrs/gomorphtag/data"
	"github.com/msnoigrs/gomorphtag/internal/lnreader"
)

// Categories of characters
const (
	DEFAULT  uint32 = 1      // The fall back category
	SPACE    uint32 = 1 << 1 // WhiteSpaces
	SYMBOL   uint32 = 1 << 2 // Punctuation and symbols
	NUMERIC  uint32 = 1 << 3 // Numerical characters
	ALPHA    uint32 = 1 << 4 // Latin alphabets
	GREEK    uint32 = 1 << 5 // Greek alphabets
	CYRILLIC uint32 = 1 << 6 // Cyrillic alphabets
	USER1    uint32 = 1 << 7 // User defined category
	USER2    uint32 = 1 << 8 // User defined category
)

const defaultCharacterDefinition = "char.def"

func GetCategoryType(s string) (uint32, error) {
	switch s {
	case "DEFAULT":
		return DEFAULT, nil
	case "SPACE":
		return SPACE, nil
	case "SYMBOL":
		return SYMBOL, nil
	case "NUMERIC":
		return NUMERIC, nil
	case "ALPHA":
		return ALPHA, nil
	case "GREEK":
		return GREEK, nil
	case "CYRILLIC":
		return CYRILLIC, nil
	case "USER1":
		return USER1, nil
	case "USER2":
		return USER2, nil
	}
	return 0, fmt.Errorf("%s is invalid type", s)
}

type categoryRange struct {
	low        rune
	high       rune
	categories uint32
}

func (r *categoryRange) contains(cp rune) bool {
	return cp >= r.low && cp <= r.high
}

type CharacterCategory struct {
	rangeList []*categoryRange
}

func NewCharacterCategory() *CharacterCategory {
	return &CharacterCategory{}
}

// DefaultCharacterCategory reads the built-in char.def.
func DefaultCharacterCategory() (*CharacterCategory, error) {
	f, err := data.Assets.Open(defaultCharacterDefinition)
	if err != nil {
		return nil, fmt.Errorf("%s: (data.Assets)%s", err, defaultCharacterDefinition)
	}
	defer f.Close()

	cat := NewCharacterCategory()
	err = cat.ReadCharacterDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("(data.Assets)%s: %s", defaultCharacterDefinition, err)
	}
	return cat, nil
}

// GetCategoryTypes combines the categories of every range containing
// codePoint. Code points outside all ranges fall back to the unicode tables.
func (cc *CharacterCategory) GetCategoryTypes(codePoint rune) uint32 {
	var categories uint32
	for _, cr := range cc.rangeList {
		if cr.contains(codePoint) {
			categories |= cr.categories
		}
	}
	if categories != 0 {
		return categories
	}

	switch {
	case unicode.IsPunct(codePoint), unicode.IsSymbol(codePoint):
		return SYMBOL
	case unicode.IsNumber(codePoint):
		return NUMERIC
	case unicode.IsSpace(codePoint):
		return SPACE
	}
	return DEFAULT
}

func (cc *CharacterCategory) ReadCharacterDefinition(charDefReader io.Reader) error {
	r := lnreader.NewLineNumberReader(charDefReader)
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
		if len(cols) < 2 {
			return fmt.Errorf("invalid format at line %d: too short fields", r.NumLine)
		}
		if !strings.HasPrefix(cols[0], "0x") {
			continue
		}

		catrange := new(categoryRange)
		rs := strings.Split(cols[0], "..")
		catrange.low, err = decodeCodePoint(rs[0])
		if err != nil {
			return fmt.Errorf("invalid format at line %d: %s", r.NumLine, err)
		}
		catrange.high = catrange.low
		if len(rs) > 1 {
			catrange.high, err = decodeCodePoint(rs[1])
			if err != nil {
				return fmt.Errorf("invalid format at line %d: %s", r.NumLine, err)
			}
		}
		if catrange.low > catrange.high {
			return fmt.Errorf("invalid format at line %d: low > high", r.NumLine)
		}
		for _, col := range cols[1:] {
			if strings.HasPrefix(col, "#") {
				break
			}
			t, err := GetCategoryType(col)
			if err != nil {
				return fmt.Errorf("%s at line %d", err, r.NumLine)
			}
			catrange.categories |= t
		}
		cc.rangeList = append(cc.rangeList, catrange)
	}

	return nil
}

func decodeCodePoint(s string) (rune, error) {
	if len(s) < 3 || !strings.HasPrefix(s, "0x") {
		return 0, fmt.Errorf("invalid hex string: %q", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return 0, err
	}
	if v > unicode.MaxRune {
		return 0, fmt.Errorf("invalid hex string: %q is out of range", s)
	}
	return rune(v), nil
}
