// Package features holds the marketing highlights shown on the home page and
// renders them as a three column grid.
package features

import (
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Span is a run of description text. A Break span ends the current line and
// carries no text.
type Span struct {
	Text  string
	Bold  bool
	Break bool
}

// Fragment is a small rich-text value: an ordered list of spans.
type Fragment []Span

// FeatureItem is one highlight block. Position in the list decides its
// column.
type FeatureItem struct {
	Title       string
	Image       string
	Description Fragment
}

func text(s string) Span { return Span{Text: s} }
func bold(s string) Span { return Span{Text: s, Bold: true} }
func br() Span           { return Span{Break: true} }

// Spanish returns the highlights of the default locale.
func Spanish() []FeatureItem {
	return []FeatureItem{
		{
			Title: "Aprende con un technical coach",
			Image: "img/learn-with-tech-coach.png",
			Description: Fragment{
				text("Somos "),
				bold("desarrolladores de software expertos"),
				text(" que ayudamos a equipos a ser los mejores, transmitimos todos los conocimientos necesarios para que mejoren técnicamente."),
				br(),
				bold("Somos Technical Coaches"),
			},
		},
		{
			Title: "Aprende en comunidad",
			Image: "img/learn-together.png",
			Description: Fragment{
				text("En CodeScouts creemos que el aprendizaje colectivo es el mejor camino para crecer como "),
				bold("profesionales"),
				text(". Por eso trabajamos en equipo, te invitamos a que pueda formar parte de nuestra comunidad."),
			},
		},
		{
			Title: "Escala hasta la cima",
			Image: "img/climb-to-the-top.png",
			Description: Fragment{
				text("En CodeScouts ayudamos a los equipos de software a aumentar la velocidad de entrega y la calidad del software, formándoles en las prácticas de"),
				bold(" Extreme Programming "),
				text("y la los principios de"),
				bold(" Software Craftsmanship"),
			},
		},
	}
}

// English returns the highlights for English locales.
func English() []FeatureItem {
	return []FeatureItem{
		{
			Title: "Learn with a Technical Coach",
			Image: "img/learn-with-tech-coach.png",
			Description: Fragment{
				text("We are "),
				bold("expert software developers"),
				text(" who help teams be the best, passing on all the knowledge they need to improve technically."),
				br(),
				bold("We are Technical Coaches"),
			},
		},
		{
			Title: "Learn in Community",
			Image: "img/learn-together.png",
			Description: Fragment{
				text("At CodeScouts we believe collective learning is the best path to grow as "),
				bold("professionals"),
				text(". That is why we work as a team, and we invite you to be part of our community."),
			},
		},
		{
			Title: "Climb to the Top",
			Image: "img/climb-to-the-top.png",
			Description: Fragment{
				text("At CodeScouts we help software teams increase delivery speed and software quality, training them in the practices of"),
				bold(" Extreme Programming "),
				text("and the principles of"),
				bold(" Software Craftsmanship"),
			},
		},
	}
}

// ForLocale picks the highlight list for a locale. Only English has its own
// copy; every other locale gets the Spanish content.
func ForLocale(locale string) []FeatureItem {
	if locale == "en" || strings.HasPrefix(locale, "en-") {
		return English()
	}
	return Spanish()
}

// Images lists the asset references of items, in order.
func Images(items []FeatureItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Image)
	}
	return out
}

// Node renders the fragment as inline markup.
func (f Fragment) Node() g.Node {
	nodes := make([]g.Node, 0, len(f))
	for _, s := range f {
		switch {
		case s.Break:
			nodes = append(nodes, h.Br())
		case s.Bold:
			nodes = append(nodes, h.B(g.Text(s.Text)))
		default:
			nodes = append(nodes, g.Text(s.Text))
		}
	}
	return g.Group(nodes)
}

// Render lays items out as a row of equal width columns, in input order.
// imageURL maps an asset reference to the URL used in the page.
func Render(items []FeatureItem, imageURL func(string) string) g.Node {
	if imageURL == nil {
		imageURL = func(s string) string { return "/" + strings.TrimPrefix(s, "/") }
	}
	return h.Section(h.Class("features"),
		h.Div(h.Class("container"),
			h.Div(h.Class("row"),
				g.Map(items, func(it FeatureItem) g.Node {
					return feature(it, imageURL(it.Image))
				}),
			),
		),
	)
}

func feature(it FeatureItem, src string) g.Node {
	return h.Div(h.Class("col col--4"),
		h.Div(h.Class("text--center"),
			h.Img(h.Src(src), h.Class("featureSvg"), g.Attr("role", "img"), h.Alt(it.Title)),
		),
		h.Div(h.Class("text--center padding-horiz--md"),
			h.H3(g.Text(it.Title)),
			h.P(it.Description.Node()),
		),
	)
}
