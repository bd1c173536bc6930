package pages

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/content"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/model"
)

const dateLayout = "2006-01-02"

// Doc renders one documentation page with the sidebar, previous/next
// navigation and an edit link when the docs preset has an edit URL.
func Doc(s Shell, sidebar []*model.ContentItem, doc *model.ContentItem) g.Node {
	var prev, next *model.ContentItem
	for i, d := range sidebar {
		if d != doc {
			continue
		}
		if i > 0 {
			prev = sidebar[i-1]
		}
		if i+1 < len(sidebar) {
			next = sidebar[i+1]
		}
	}

	meta := model.PageMeta{
		Title:       doc.Title,
		Description: doc.Description,
		Permalink:   doc.Permalink,
		Image:       doc.Image,
	}
	return s.Page(meta,
		h.Div(h.Class("main-wrapper docs-wrapper"),
			h.Div(h.Class("container margin-vert--lg"),
				h.Div(h.Class("row"),
					h.Aside(h.Class("col col--3 theme-doc-sidebar"),
						h.Ul(h.Class("menu__list"),
							g.Map(sidebar, func(d *model.ContentItem) g.Node {
								class := "menu__link"
								if d == doc {
									class += " menu__link--active"
								}
								return h.Li(h.Class("menu__list-item"),
									h.A(h.Class(class), h.Href(s.Config.Path(d.Permalink)), g.Text(d.Label())),
								)
							}),
						),
					),
					h.Main(h.Class("col col--9"),
						h.Article(h.Class("markdown"),
							g.If(!strings.Contains(doc.ContentHTML, "<h1"), h.H1(g.Text(doc.Title))),
							g.Raw(doc.ContentHTML),
						),
						editLink(s.Config.Presets.Docs.EditURL, "docs/"+doc.RelPath),
						h.Nav(h.Class("pagination-nav"),
							pagerLink(s, prev, "pagination-nav__link--prev", "Previous"),
							pagerLink(s, next, "pagination-nav__link--next", "Next"),
						),
					),
				),
			),
		),
	)
}

func pagerLink(s Shell, d *model.ContentItem, class, sub string) g.Node {
	if d == nil {
		return nil
	}
	return h.A(h.Class("pagination-nav__link "+class), h.Href(s.Config.Path(d.Permalink)),
		h.Div(h.Class("pagination-nav__sublabel"), g.Text(sub)),
		h.Div(h.Class("pagination-nav__label"), g.Text(d.Label())),
	)
}

func editLink(base, rel string) g.Node {
	if base == "" {
		return nil
	}
	return h.Div(h.Class("theme-edit-this-page"),
		link("edit-this-page", strings.TrimSuffix(base, "/")+"/"+rel, "Edit this page"),
	)
}

// BlogList is the index of blog posts, newest first.
func BlogList(s Shell, posts []*model.ContentItem) g.Node {
	return s.Page(model.PageMeta{Title: "Blog", Permalink: model.BlogIndexPermalink},
		h.Main(h.Class("container margin-vert--lg"),
			h.H1(g.Text("Blog")),
			g.Map(posts, func(p *model.ContentItem) g.Node {
				return h.Article(h.Class("margin-bottom--xl"),
					h.H2(h.A(h.Href(s.Config.Path(p.Permalink)), g.Text(p.Title))),
					postInfo(s, p),
					g.If(p.Description != "", h.P(g.Text(p.Description))),
				)
			}),
		),
	)
}

// BlogPost renders a single post.
func BlogPost(s Shell, post *model.ContentItem) g.Node {
	meta := model.PageMeta{
		Title:       post.Title,
		Description: post.Description,
		Permalink:   post.Permalink,
		Image:       post.Image,
	}
	return s.Page(meta,
		h.Main(h.Class("container margin-vert--lg"),
			h.Article(h.Class("markdown"),
				h.H1(g.Text(post.Title)),
				postInfo(s, post),
				g.Raw(post.ContentHTML),
				g.If(len(post.Tags) > 0, h.Ul(h.Class("tags"),
					g.Map(post.Tags, func(t string) g.Node { return h.Li(g.Text(t)) }),
				)),
			),
			editLink(s.Config.Presets.Blog.EditURL, "blog/"+post.RelPath),
		),
	)
}

func postInfo(s Shell, p *model.ContentItem) g.Node {
	var parts []string
	if !p.Date.IsZero() {
		parts = append(parts, p.Date.Format(dateLayout))
	}
	if len(p.Authors) > 0 {
		parts = append(parts, strings.Join(p.Authors, ", "))
	}
	if s.Config.Presets.Blog.ShowReadingTime {
		parts = append(parts, strconv.Itoa(content.ReadingTime(p.Words))+" min read")
	}
	if len(parts) == 0 {
		return nil
	}
	return h.Div(h.Class("post-info"), g.Text(strings.Join(parts, " · ")))
}
