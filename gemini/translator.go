// Package gemini implements harvest.Translator using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/harvest"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for translation.
const DefaultModel = "gemini-2.5-flash"

// DefaultTargetLanguage is the BCP 47 tag articles are translated into.
const DefaultTargetLanguage = "zh-CN"

// Ensure Translator implements harvest.Translator at compile time.
var _ harvest.Translator = (*Translator)(nil)

// Translator implements harvest.Translator using Google Gemini.
type Translator struct {
	client *genai.Client
	model  string
	target string
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(t *Translator) {
		t.model = model
	}
}

// WithTargetLanguage overrides DefaultTargetLanguage.
func WithTargetLanguage(lang string) Option {
	return func(t *Translator) {
		t.target = lang
	}
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client, opts ...Option) *Translator {
	t := &Translator{
		client: client,
		model:  DefaultModel,
		target: DefaultTargetLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns text translated into the target language.
// Blank text is returned unchanged without calling the API.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if t.client == nil {
		return "", harvest.Errorf(harvest.EINVALID, "gemini client required")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(t.target),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", harvest.Errorf(harvest.EINTERNAL, "gemini returned nil result")
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return "", harvest.Errorf(harvest.EINTERNAL, "gemini returned empty translation")
	}
	return translated, nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig(target string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a professional translator. Translate the article the user provides into " + target +
					". Preserve paragraph breaks, names, numbers and URLs. Reply with the translation only.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt wraps the article text for translation.
func BuildUserPrompt(text string) string {
	return "<article>\n" + text + "\n</article>"
}
