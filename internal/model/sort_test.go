package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func permalinks(items []*ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Permalink
	}
	return out
}

func TestSortSidebar(t *testing.T) {
	docs := []*ContentItem{
		{Permalink: "/docs/z/"},
		{Permalink: "/docs/b/", SidebarPosition: 2},
		{Permalink: "/docs/a/"},
		{Permalink: "/docs/intro/", SidebarPosition: 1},
		{Permalink: "/docs/c/", SidebarPosition: 2},
	}
	SortSidebar(docs)
	assert.Equal(t, []string{"/docs/intro/", "/docs/b/", "/docs/c/", "/docs/a/", "/docs/z/"}, permalinks(docs))
}

func TestSortPosts(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []*ContentItem{
		{Permalink: "/blog/undated/"},
		{Permalink: "/blog/old/", Date: day(1)},
		{Permalink: "/blog/new/", Date: day(9)},
		{Permalink: "/blog/mid-b/", Date: day(5)},
		{Permalink: "/blog/mid-a/", Date: day(5)},
	}
	SortPosts(posts)
	assert.Equal(t, []string{"/blog/new/", "/blog/mid-a/", "/blog/mid-b/", "/blog/old/", "/blog/undated/"}, permalinks(posts))
}

func TestIndex(t *testing.T) {
	site := &SiteData{ContentItems: []*ContentItem{
		{Type: TypePost, Permalink: "/blog/p/"},
		{Type: TypeDoc, Permalink: "/docs/b/", SidebarPosition: 2},
		{Type: TypeDoc, Permalink: "/docs/intro/", SidebarPosition: 1, SidebarLabel: "Inicio", Title: "Introducción"},
	}}
	site.Index()

	assert.Len(t, site.Docs, 2)
	assert.Len(t, site.Posts, 1)
	assert.Equal(t, "/blog/p/", site.Posts[0].Permalink)
	assert.Equal(t, "/docs/intro/", site.FirstDoc().Permalink)
	assert.Equal(t, "Inicio", site.FirstDoc().Label())

	empty := &SiteData{}
	empty.Index()
	assert.Nil(t, empty.FirstDoc())
}
