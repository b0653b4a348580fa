package gomorphtag

import (
	"github.com/msnoigrs/gomorphtag/dictionary"
)

// Predictor tags a stream of words, carrying the previously chosen tag.
// Callers Reset it at sentence boundaries. A Predictor is not safe for
// concurrent use; create one per stream.
type Predictor struct {
	model *Model
	prev  string
}

func NewPredictor(model *Model) *Predictor {
	return &Predictor{
		model: model,
		prev:  NoneTag,
	}
}

// Predict chooses the analysis of word and remembers its tag.
func (p *Predictor) Predict(word string) (dictionary.Candidate, error) {
	cand, err := p.model.Predict(p.prev, word)
	if err != nil {
		return cand, err
	}
	p.prev = cand.Tag
	return cand, nil
}

func (p *Predictor) Reset() {
	p.prev = NoneTag
}

func (p *Predictor) PreviousTag() string {
	return p.prev
}
