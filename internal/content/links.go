package content

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var resolutionKey = parser.NewContextKey()

// linkResolution carries the per-document state of linkRewriter.
type linkResolution struct {
	dir        string
	permalinks map[string]string
	broken     []string
}

// linkRewriter replaces relative links to .md files with the permalink of
// the target document.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	res, ok := pc.Get(resolutionKey).(*linkResolution)
	if !ok {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		target, markdown, ok := res.resolve(dest)
		switch {
		case ok:
			link.Destination = []byte(target)
		case markdown:
			res.broken = append(res.broken, dest)
		}
		return ast.WalkContinue, nil
	})
}

// resolve reports whether dest is a relative Markdown link and, if it names
// a known document, the permalink to use instead.
func (r *linkResolution) resolve(dest string) (target string, markdown, ok bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return "", false, false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext != ".md" && ext != ".markdown" {
		return "", false, false
	}
	key := path.Clean(path.Join(r.dir, u.Path))
	permalink, found := r.permalinks[key]
	if !found {
		return "", true, false
	}
	if u.Fragment != "" {
		permalink += "#" + u.Fragment
	}
	return permalink, true, true
}
