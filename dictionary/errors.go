package dictionary

import (
	"errors"
)

var (
	// ErrMissingResource reports an absent dictionary directory or file.
	ErrMissingResource = errors.New("missing resource")
	// ErrCorruptedDictionary reports a malformed dictionary artifact.
	ErrCorruptedDictionary = errors.New("corrupted dictionary")
	// ErrEmptyWord is returned for lookups of the empty string.
	ErrEmptyWord = errors.New("empty word")
)
