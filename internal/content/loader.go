// Package content collects the Markdown documentation and blog posts of the
// site, extracts their front matter and renders them to HTML.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/model"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

var (
	ErrBrokenMarkdownLink = errors.New("broken markdown link")
	ErrDuplicatePermalink = errors.New("duplicate permalink")
)

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)

type frontMatter struct {
	Title           string   `yaml:"title" toml:"title"`
	Description     string   `yaml:"description" toml:"description"`
	Slug            string   `yaml:"slug" toml:"slug"`
	SidebarLabel    string   `yaml:"sidebar_label" toml:"sidebar_label"`
	SidebarPosition float64  `yaml:"sidebar_position" toml:"sidebar_position"`
	Date            string   `yaml:"date" toml:"date"`
	Authors         []string `yaml:"authors" toml:"authors"`
	Tags            []string `yaml:"tags" toml:"tags"`
	Image           string   `yaml:"image" toml:"image"`
	Draft           bool     `yaml:"draft" toml:"draft"`
}

// Loader reads content/docs and content/blog.
type Loader struct {
	Logger *zap.Logger
	// OnBrokenMarkdownLinks is one of the siteconfig policies.
	OnBrokenMarkdownLinks string
	IncludeDrafts         bool
}

type source struct {
	item *model.ContentItem
	body []byte
}

// Load walks dir and returns every document found, rendered. A missing dir
// yields no documents. Relative links between Markdown files are rewritten to
// permalinks; links that cannot be resolved are handled according to
// OnBrokenMarkdownLinks.
func (l *Loader) Load(ctx context.Context, dir string) ([]*model.ContentItem, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var sources []source
	for _, typ := range []string{model.TypeDoc, model.TypePost} {
		root := filepath.Join(dir, typ)
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("content directory not found, skipping", zap.String("dir", root))
			continue
		}
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !isMarkdown(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return fmt.Errorf("failed to get relative path for %s: %w", p, err)
			}
			src, err := readSource(typ, p, filepath.ToSlash(rel))
			if err != nil {
				return err
			}
			if src.item.Draft && !l.IncludeDrafts {
				logger.Debug("skipping draft", zap.String("path", p))
				return nil
			}
			sources = append(sources, src)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error during content collection walk: %w", err)
		}
	}

	permalinks := make(map[string]string, len(sources))
	owners := make(map[string]string, len(sources))
	for _, s := range sources {
		if s.item.Permalink == model.BlogIndexPermalink {
			return nil, fmt.Errorf("%w: %s takes %s, which is the blog index",
				ErrDuplicatePermalink, s.item.SourcePath, s.item.Permalink)
		}
		if prev, ok := owners[s.item.Permalink]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s",
				ErrDuplicatePermalink, prev, s.item.SourcePath, s.item.Permalink)
		}
		owners[s.item.Permalink] = s.item.SourcePath
		permalinks[s.item.Type+"/"+s.item.RelPath] = s.item.Permalink
	}

	md := newMarkdown()
	var broken []string
	items := make([]*model.ContentItem, 0, len(sources))
	for _, s := range sources {
		pc := parser.NewContext()
		rw := &linkResolution{
			dir:        path.Dir(s.item.Type + "/" + s.item.RelPath),
			permalinks: permalinks,
		}
		pc.Set(resolutionKey, rw)

		var buf bytes.Buffer
		if err := md.Convert(s.body, &buf, parser.WithContext(pc)); err != nil {
			return nil, fmt.Errorf("failed to render markdown %s: %w", s.item.SourcePath, err)
		}
		s.item.ContentHTML = buf.String()
		s.item.Words = countWords(s.item.ContentHTML)
		for _, dest := range rw.broken {
			logger.Warn("broken markdown link",
				zap.String("source", s.item.SourcePath),
				zap.String("target", dest))
			broken = append(broken, fmt.Sprintf("%s -> %s", s.item.SourcePath, dest))
		}
		items = append(items, s.item)
	}

	if len(broken) > 0 && l.OnBrokenMarkdownLinks == siteconfig.PolicyThrow {
		return nil, fmt.Errorf("%w: %s", ErrBrokenMarkdownLink, strings.Join(broken, ", "))
	}
	return items, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(linkRewriter{}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func readSource(typ, p, rel string) (source, error) {
	f, err := os.Open(p)
	if err != nil {
		return source{}, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	var fm frontMatter
	body, err := frontmatter.Parse(f, &fm)
	if err != nil {
		return source{}, fmt.Errorf("failed to parse front matter in %s: %w", p, err)
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	item := &model.ContentItem{
		Type:            typ,
		Title:           fm.Title,
		Description:     fm.Description,
		SidebarLabel:    fm.SidebarLabel,
		SidebarPosition: fm.SidebarPosition,
		Authors:         fm.Authors,
		Tags:            fm.Tags,
		Image:           fm.Image,
		Draft:           fm.Draft,
		SourcePath:      p,
		RelPath:         rel,
	}

	if fm.Date != "" {
		d, err := parseDate(fm.Date)
		if err != nil {
			return source{}, fmt.Errorf("invalid date %q in %s: %w", fm.Date, p, err)
		}
		item.Date = d
	}
	if m := datePrefix.FindStringSubmatch(base); m != nil {
		if item.Date.IsZero() {
			item.Date, _ = time.Parse("2006-01-02", m[1])
		}
		base = strings.TrimPrefix(base, m[0])
	}

	if item.Title == "" {
		item.Title = firstHeading(body)
	}
	if item.Title == "" {
		item.Title = titleFromName(base)
	}

	item.Slug = slugFor(rel, base, fm.Slug)
	item.Permalink = "/" + typ + "/" + item.Slug + "/"
	if item.Slug == "" {
		item.Permalink = "/" + typ + "/"
	}
	return source{item: item, body: body}, nil
}

func slugFor(rel, base, explicit string) string {
	if explicit != "" {
		return strings.Trim(explicit, "/")
	}
	dir := path.Dir(rel)
	if base == "index" {
		base = ""
	}
	if dir == "." {
		return base
	}
	return strings.Trim(path.Join(dir, base), "/")
}

func parseDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// countWords counts the words a reader sees in rendered HTML. Preformatted
// blocks are left out.
func countWords(doc string) int {
	var text strings.Builder
	z := html.NewTokenizer(strings.NewReader(doc))
	pre := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return len(strings.Fields(text.String()))
		case html.TextToken:
			if pre == 0 {
				text.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "pre" && tt == html.StartTagToken:
				pre++
			case tag == "pre" && tt == html.EndTagToken && pre > 0:
				pre--
			}
			if !inlineTags[tag] {
				text.WriteByte(' ')
			}
		}
	}
}

var inlineTags = map[string]bool{
	"a": true, "b": true, "strong": true, "em": true, "i": true,
	"code": true, "del": true, "span": true, "sub": true, "sup": true,
}

// ReadingTime estimates minutes to read words at 200 words per minute,
// rounding up, never less than one.
func ReadingTime(words int) int {
	const wpm = 200
	m := (words + wpm - 1) / wpm
	if m < 1 {
		return 1
	}
	return m
}
