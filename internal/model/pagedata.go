package model

// PageMeta is the per-page data the page shell needs.
type PageMeta struct {
	Title       string
	Description string
	Permalink   string
	Image       string
}
