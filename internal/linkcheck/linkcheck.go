// Package linkcheck finds internal links in generated HTML that do not
// resolve to a file of the build output.
package linkcheck

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Broken is an internal link whose target is missing.
type Broken struct {
	Page   string
	Target string
}

func (b Broken) String() string {
	return fmt.Sprintf("%s -> %s", b.Page, b.Target)
}

var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
}

// Links returns the href and src values of a, link, img and script elements
// in document order.
func Links(r io.Reader) ([]string, error) {
	z := html.NewTokenizer(r)
	var out []string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return out, nil
			}
			return nil, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			want, ok := linkAttrs[tok.Data]
			if !ok {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == want && a.Val != "" {
					out = append(out, a.Val)
				}
			}
		}
	}
}

// Check scans every .html file under dir and reports internal links that
// point nowhere. baseURL is stripped from link paths before resolving them.
func Check(dir, baseURL string) ([]Broken, error) {
	var broken []Broken
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", p, err)
		}
		links, err := Links(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}
		page := "/" + filepath.ToSlash(rel)
		for _, l := range links {
			target, ok := internalPath(page, l, baseURL)
			if !ok {
				continue
			}
			if target == "" || !exists(dir, target) {
				broken = append(broken, Broken{Page: page, Target: l})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(broken, func(a, b Broken) int {
		if c := strings.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return broken, nil
}

// internalPath resolves link against page and returns the output relative
// path it refers to, or "" for absolute paths outside baseURL. ok is false
// for external, fragment-only and non-http links.
func internalPath(page, link, baseURL string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir(page), p)
	} else {
		base := "/" + strings.Trim(baseURL, "/")
		if base != "/" {
			trimmed, found := strings.CutPrefix(p, base)
			if !found {
				return "", true
			}
			p = "/" + strings.TrimPrefix(trimmed, "/")
		}
	}
	return p, true
}

func exists(dir, p string) bool {
	local := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(p, "/")))
	info, err := os.Stat(local)
	if err == nil {
		if !info.IsDir() {
			return true
		}
		_, err = os.Stat(filepath.Join(local, "index.html"))
		return err == nil
	}
	_, err = os.Stat(local + ".html")
	return err == nil
}
