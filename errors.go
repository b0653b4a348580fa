package gomorphtag

import (
	"errors"
)

var (
	// ErrCorruptedModel reports a malformed or truncated model file.
	ErrCorruptedModel = errors.New("corrupted model")
	// ErrCorruptedCorpus reports a corpus line without exactly three fields.
	ErrCorruptedCorpus = errors.New("corrupted corpus")
	// ErrNoScorableTokens is returned when an evaluation has nothing to
	// score. The accuracy is NaN in that case.
	ErrNoScorableTokens = errors.New("no scorable tokens")
)
