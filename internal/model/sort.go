package model

import (
	"sort"
)

// SortSidebar orders docs by sidebar position, then permalink. Docs without
// a position come after positioned ones.
func SortSidebar(docs []*ContentItem) {
	sort.SliceStable(docs, func(i, j int) bool {
		pi, pj := docs[i].SidebarPosition, docs[j].SidebarPosition
		switch {
		case pi == 0 && pj != 0:
			return false
		case pj == 0 && pi != 0:
			return true
		case pi != pj:
			return pi < pj
		}
		return docs[i].Permalink < docs[j].Permalink
	})
}

// SortPosts orders posts newest first. Undated posts go last.
func SortPosts(posts []*ContentItem) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.IsZero() {
			return false
		}
		if posts[j].Date.IsZero() {
			return true
		}
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Permalink < posts[j].Permalink
		}
		return posts[i].Date.After(posts[j].Date)
	})
}
