package model

import (
	"time"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/features"
)

const (
	TypeDoc  = "docs"
	TypePost = "blog"

	// BlogIndexPermalink is where the generated list of posts lives.
	BlogIndexPermalink = "/blog/"
)

// ContentItem is a Markdown document after front matter extraction and
// rendering.
type ContentItem struct {
	Type            string
	Slug            string
	Title           string
	Description     string
	SidebarLabel    string
	SidebarPosition float64
	Date            time.Time
	Authors         []string
	Tags            []string
	Image           string
	SourcePath      string
	RelPath         string
	Permalink       string
	ContentHTML     string
	Words           int
	Draft           bool
}

// Label is the text used for the item in navigation.
func (c *ContentItem) Label() string {
	if c.SidebarLabel != "" {
		return c.SidebarLabel
	}
	return c.Title
}

// SiteData holds everything a build renders: home page highlights and
// collected content.
type SiteData struct {
	Features     []features.FeatureItem
	ContentItems []*ContentItem
	Docs         []*ContentItem
	Posts        []*ContentItem
}

// Index groups ContentItems into Docs and Posts. Docs follow sidebar order
// and posts are newest first.
func (s *SiteData) Index() {
	s.Docs = nil
	s.Posts = nil
	for _, item := range s.ContentItems {
		switch item.Type {
		case TypeDoc:
			s.Docs = append(s.Docs, item)
		case TypePost:
			s.Posts = append(s.Posts, item)
		}
	}
	SortSidebar(s.Docs)
	SortPosts(s.Posts)
}

// FirstDoc returns the first page of the docs sidebar, or nil.
func (s *SiteData) FirstDoc() *ContentItem {
	if len(s.Docs) == 0 {
		return nil
	}
	return s.Docs[0]
}
