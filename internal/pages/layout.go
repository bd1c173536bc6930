// Package pages composes the HTML documents of the site: the shared page
// shell (navbar, footer, theme) and the home, documentation, blog and 404
// pages rendered inside it.
package pages

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/model"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

const (
	navbarSidebarType = "docSidebar"
	gtagScriptURL     = "https://www.googletagmanager.com/gtag/js?id="
)

// Shell wraps page bodies in the navbar, footer and theme of the site. Year
// is the copyright year, supplied by the caller so that rendering does not
// read the clock.
type Shell struct {
	Config siteconfig.Config
	Year   int
	// FirstDoc is the permalink docSidebar navbar items point to.
	FirstDoc string
}

// Asset returns the URL of a static asset reference.
func (s Shell) Asset(ref string) string {
	return s.Config.Path(ref)
}

// Page renders a complete HTML document.
func (s Shell) Page(meta model.PageMeta, body ...g.Node) g.Node {
	cfg := s.Config
	return h.Doctype(
		h.HTML(h.Lang(cfg.Lang()),
			g.Attr("data-theme", "light"),
			g.Attr("data-prism-theme", cfg.ThemeConfig.Prism.Theme),
			g.Attr("data-prism-dark-theme", cfg.ThemeConfig.Prism.DarkTheme),
			s.head(meta),
			h.Body(
				s.navbar(),
				g.Group(body),
				s.footer(),
			),
		),
	)
}

func (s Shell) head(meta model.PageMeta) g.Node {
	cfg := s.Config
	title := cfg.Title
	if meta.Title != "" {
		title = meta.Title + " | " + cfg.Title
	}
	image := meta.Image
	if image == "" {
		image = cfg.ThemeConfig.Image
	}
	return h.Head(
		h.Meta(h.Charset("utf-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
		g.El("title", g.Text(title)),
		g.If(meta.Description != "", h.Meta(h.Name("description"), h.Content(meta.Description))),
		h.Meta(g.Attr("property", "og:title"), h.Content(title)),
		g.If(image != "", h.Meta(g.Attr("property", "og:image"), h.Content(absoluteURL(cfg, image)))),
		g.If(meta.Permalink != "", h.Link(h.Rel("canonical"), h.Href(absoluteURL(cfg, meta.Permalink)))),
		g.If(cfg.Favicon != "", h.Link(h.Rel("icon"), h.Href(s.Asset(cfg.Favicon)))),
		h.Link(h.Rel("stylesheet"), h.Href(s.Asset(cfg.Presets.Theme.CustomCSS))),
		gtag(cfg.Presets.Gtag.TrackingID),
	)
}

func gtag(id string) g.Node {
	if id == "" {
		return nil
	}
	js := template.JSEscapeString(id)
	return g.Group{
		h.Script(g.Attr("async"), h.Src(gtagScriptURL+id)),
		h.Script(g.Raw(fmt.Sprintf(
			"window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','%s',{});",
			js,
		))),
	}
}

func (s Shell) navbar() g.Node {
	nb := s.Config.ThemeConfig.Navbar
	var left, right []g.Node
	for _, item := range nb.Items {
		n := s.navItem(item)
		if item.Position == "right" {
			right = append(right, n)
		} else {
			left = append(left, n)
		}
	}
	return h.Nav(h.Class("navbar"),
		h.Div(h.Class("navbar__inner"),
			h.Div(h.Class("navbar__items"),
				h.A(h.Class("navbar__brand"), h.Href(s.Config.Path("/")),
					g.If(nb.Logo.Src != "", h.Div(h.Class("navbar__logo"),
						h.Img(h.Src(s.Asset(nb.Logo.Src)), h.Alt(nb.Logo.Alt)),
					)),
					h.B(h.Class("navbar__title"), g.Text(nb.Title)),
				),
				g.Group(left),
			),
			h.Div(h.Class("navbar__items navbar__items--right"), g.Group(right)),
		),
	)
}

func (s Shell) navItem(item siteconfig.NavbarItem) g.Node {
	href := item.Href
	switch {
	case item.Type == navbarSidebarType:
		href = s.FirstDoc
		if href == "" {
			href = s.Config.Path(IntroPath)
		}
	case item.To != "":
		href = s.Config.Path(item.To)
	}
	return link("navbar__item navbar__link", href, item.Label)
}

func (s Shell) footer() g.Node {
	f := s.Config.ThemeConfig.Footer
	return h.Footer(h.Class("footer footer--"+f.Style),
		h.Div(h.Class("container"),
			h.Div(h.Class("row footer__links"),
				g.Map(f.Links, func(col siteconfig.FooterLink) g.Node {
					return h.Div(h.Class("col footer__col"),
						h.Div(h.Class("footer__title"), g.Text(col.Title)),
						h.Ul(h.Class("footer__items"),
							g.Map(col.Items, func(item siteconfig.FooterItem) g.Node {
								href := item.Href
								if item.To != "" {
									href = s.Config.Path(item.To)
								}
								return h.Li(h.Class("footer__item"), link("footer__link-item", href, item.Label))
							}),
						),
					)
				}),
			),
			h.Div(h.Class("footer__bottom text--center"),
				h.Div(h.Class("footer__copyright"), g.Text(s.Config.Copyright(s.Year))),
			),
		),
	)
}

// link renders an anchor; external links open in a new tab.
func link(class, href, label string) g.Node {
	external := isExternal(href)
	return h.A(h.Class(class), h.Href(href),
		g.If(external, h.Target("_blank")),
		g.If(external, h.Rel("noopener noreferrer")),
		g.Text(label),
	)
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

func absoluteURL(cfg siteconfig.Config, p string) string {
	if isExternal(p) {
		return p
	}
	return strings.TrimSuffix(cfg.URL, "/") + cfg.Path(p)
}

// Write renders node to w.
func Write(w io.Writer, node g.Node) error {
	return node.Render(w)
}
