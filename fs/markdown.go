package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/post/my-idea → post/my-idea.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// frontmatter is the YAML header of an exported article.
type frontmatter struct {
	Source   string `yaml:"source"`
	Title    string `yaml:"title"`
	Category string `yaml:"category,omitempty"`
	Author   string `yaml:"author,omitempty"`
	Crawled  string `yaml:"crawled"`
}

// FormatRecord formats a record as markdown with YAML frontmatter.
// The markdown body is used when present, otherwise the plain content.
func FormatRecord(r *harvest.Record) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:   r.URL,
		Title:    r.Title,
		Category: string(r.Category),
		Author:   r.Author,
		Crawled:  r.CrawledAt.Format("2006-01-02"),
	})
	if err != nil {
		return "", err
	}

	body := r.Markdown
	if body == "" {
		body = r.Content
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// Ensure MarkdownExport implements harvest.RecordSaver at compile time.
var _ harvest.RecordSaver = (*MarkdownExport)(nil)

// MarkdownExport writes one markdown file per record into a directory.
// Files are written to a sibling .tmp directory that replaces the target
// directory only after every file was written.
type MarkdownExport struct {
	dir string
}

// NewMarkdownExport creates an export rooted at dir.
func NewMarkdownExport(dir string) *MarkdownExport {
	return &MarkdownExport{dir: filepath.Clean(dir)}
}

func (e *MarkdownExport) tempDir() string {
	return e.dir + ".tmp"
}

// Save replaces the directory contents with the given records.
func (e *MarkdownExport) Save(ctx context.Context, records []*harvest.Record) error {
	if err := os.RemoveAll(e.tempDir()); err != nil {
		return err
	}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			_ = os.RemoveAll(e.tempDir())
			return err
		}
		if err := e.write(r); err != nil {
			_ = os.RemoveAll(e.tempDir())
			return err
		}
	}

	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

func (e *MarkdownExport) write(r *harvest.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(r.URL)
	if err != nil {
		return err
	}
	if !filepath.IsLocal(filepath.FromSlash(relPath)) {
		return harvest.Errorf(harvest.EINVALID, "path %q for %s escapes export directory", relPath, r.URL)
	}
	fullPath := filepath.Join(e.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatRecord(r)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
