package pages

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/features"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/model"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

// IntroPath is where the home page call to action points.
const IntroPath = "/docs/intro"

const (
	ctaLabel        = "Learn how to use our library - 5min ⏱️"
	homeTitle       = "Home"
	homeDescription = "We help software development teams achieve technical excellence, focusing both on software delivery quality and speed, as well as on improving and sustaining team pace."
)

// Header is the banner at the top of the home page: site title, tagline and
// a single call to action.
func Header(cfg siteconfig.Config) g.Node {
	return h.Header(h.Class("hero hero--primary heroBanner"),
		h.Div(h.Class("container"),
			h.H1(h.Class("hero__title"), g.Text(cfg.Title)),
			h.P(h.Class("hero__subtitle"), g.Text(cfg.Tagline)),
			h.Div(h.Class("buttons"),
				h.A(h.Class("button button--secondary button--lg"), h.Href(cfg.Path(IntroPath)), g.Text(ctaLabel)),
			),
		),
	)
}

// Home is the landing page.
func Home(s Shell, items []features.FeatureItem) g.Node {
	meta := model.PageMeta{
		Title:       homeTitle,
		Description: homeDescription,
		Permalink:   "/",
	}
	return s.Page(meta,
		Header(s.Config),
		h.Main(features.Render(items, s.Asset)),
	)
}

// NotFound is written to 404.html.
func NotFound(s Shell) g.Node {
	return s.Page(model.PageMeta{Title: "Page Not Found"},
		h.Main(h.Class("container margin-vert--xl"),
			h.Div(h.Class("row"),
				h.Div(h.Class("col col--6 col--offset-3"),
					h.H1(h.Class("hero__title"), g.Text("Page Not Found")),
					h.P(g.Text("We could not find what you were looking for.")),
					h.P(h.A(h.Href(s.Config.Path("/")), g.Text(s.Config.Title))),
				),
			),
		),
	)
}
