package harvest

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an article body fragment into Markdown.
	Convert(html string) (string, error)
}
