package harvest

import "context"

// Translator translates article text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

var _ Translator = NopTranslator{}

// NopTranslator returns text unchanged.
type NopTranslator struct{}

func (NopTranslator) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
