package harvest

// SelectorChain is an ordered list of CSS selectors for one page field.
// Earlier selectors target more current layouts and take precedence.
type SelectorChain struct {
	Field     string   `yaml:"field"`
	Selectors []string `yaml:"selectors"`
}

// DefaultTitleChain returns the known article title layouts, newest first.
func DefaultTitleChain() SelectorChain {
	return SelectorChain{
		Field: "title",
		Selectors: []string{
			"h1.firestore-post__title",
			"h1.post-title",
			"h1.post-page__title",
			"h1.post-page__header",
			"div.post-header h1",
			"header.post-page__title",
			"article h1",
		},
	}
}

// DefaultBodyChain returns the known article body layouts, newest first.
func DefaultBodyChain() SelectorChain {
	return SelectorChain{
		Field: "body",
		Selectors: []string{
			"div.firestore-post__main",
			"div.post-content",
			"div.post-page__body",
			"div.post-page__main",
			"article div.content",
		},
	}
}
