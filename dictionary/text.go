package dictionary

import (
	"golang.org/x/text/unicode/norm"
)

// Dictionary keys are uppercase UTF-8 with Ё folded onto Е. Cyrillic
// letters are two byte sequences led by 0xD0 or 0xD1, so case mapping works
// on byte pairs.

// NormalizeWord composes word to NFC and applies UpperBytes.
func NormalizeWord(word []byte) []byte {
	return UpperBytes(norm.NFC.Bytes(word))
}

// UpperBytes uppercases ASCII and two byte Cyrillic letters and folds
// Ё/ё onto Е. Other bytes are copied unchanged.
func UpperBytes(src []byte) []byte {
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c >= 'a' && c <= 'z':
			dst[i] = c - ('a' - 'A')
		case (c == 0xD0 || c == 0xD1) && i+1 < len(src) && isContinuation(src[i+1]):
			dst[i], dst[i+1] = upperCyrillic(c, src[i+1])
			i++
		default:
			dst[i] = c
		}
	}
	return dst
}

// upperCyrillic maps the pair U+0400..U+047F encoded as (lead, trail).
func upperCyrillic(lead, trail byte) (byte, byte) {
	switch {
	case lead == 0xD0 && trail == 0x81: // Ё
		return 0xD0, 0x95
	case lead == 0xD1 && trail == 0x91: // ё
		return 0xD0, 0x95
	case lead == 0xD0 && trail >= 0xB0: // а..п
		return 0xD0, trail - 0x20
	case lead == 0xD1 && trail <= 0x8F: // р..я
		return 0xD0, trail + 0x20
	case lead == 0xD1 && trail <= 0x9F: // ѐ..џ
		return 0xD0, trail - 0x10
	}
	return lead, trail
}

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}

// CharCount counts UTF-8 characters by their lead bytes.
func CharCount(b []byte) int {
	n := 0
	for _, c := range b {
		if !isContinuation(c) {
			n++
		}
	}
	return n
}

// LastChars returns the trailing n whole characters of b, or b itself when
// it is shorter.
func LastChars(b []byte, n int) []byte {
	if n <= 0 {
		return b[len(b):]
	}
	i := len(b)
	for i > 0 && n > 0 {
		i--
		if !isContinuation(b[i]) {
			n--
		}
	}
	return b[i:]
}
