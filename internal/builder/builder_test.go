package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/assets"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/config"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/content"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/features"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// newProject lays out a minimal site and returns a builder for it.
func newProject(t *testing.T) (*Builder, string) {
	t.Helper()
	root := t.TempDir()
	for _, img := range []string{
		"img/favicon.png",
		"img/logo.png",
		"img/learn-with-tech-coach.png",
		"img/learn-together.png",
		"img/climb-to-the-top.png",
	} {
		writeFile(t, root, "static/"+img, "png")
	}
	writeFile(t, root, "content/docs/intro.md", `---
title: Introducción
sidebar_position: 1
---
Empieza por [la guía](guide.md).
`)
	writeFile(t, root, "content/docs/guide.md", `---
sidebar_position: 2
---
# Guía

Vuelve a la [introducción](./intro.md).
`)
	writeFile(t, root, "content/blog/2024-01-01-hola.md", `---
title: Hola
---
Bienvenidos.
`)

	b := &Builder{
		Config: config.Config{
			OutputDir:  filepath.Join(root, "build"),
			ContentDir: filepath.Join(root, "content"),
			StaticDir:  filepath.Join(root, "static"),
		},
		Site:   siteconfig.Default(),
		Logger: zaptest.NewLogger(t),
		Now:    func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) },
	}
	return b, root
}

func TestBuild(t *testing.T) {
	b, _ := newProject(t)
	out := b.Config.OutputDir

	report, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, report.Pages)
	assert.Equal(t, 6, report.Assets)
	assert.Equal(t, 2, report.Docs)
	assert.Equal(t, 1, report.Posts)
	assert.Empty(t, report.BrokenLinks)

	for _, rel := range []string{
		"index.html",
		"404.html",
		"docs/intro/index.html",
		"docs/guide/index.html",
		"blog/index.html",
		"blog/hola/index.html",
		"css/custom.css",
		"img/logo.png",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}

	home := readFile(t, out, "index.html")
	assert.Contains(t, home, "Copyright © 2026 CodeScouts academy")
	assert.Contains(t, home, "Aprende con un technical coach")
	assert.Contains(t, home, `href="/docs/intro/"`)

	intro := readFile(t, out, "docs/intro/index.html")
	assert.Contains(t, intro, `<a href="/docs/guide/">la guía</a>`)
	assert.Contains(t, intro, `class="menu__link menu__link--active"`)

	css := readFile(t, out, "css/custom.css")
	theme, err := assets.Theme.ReadFile(assets.ThemeStylesheet)
	require.NoError(t, err)
	assert.Equal(t, string(theme), css)
}

func TestBuildIsIdempotent(t *testing.T) {
	b, _ := newProject(t)
	out := b.Config.OutputDir

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	first := readFile(t, out, "index.html")

	_, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, out, "index.html"))
}

func TestBuildCleansOutput(t *testing.T) {
	b, _ := newProject(t)
	writeFile(t, b.Config.OutputDir, "stale.html", "old")

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(b.Config.OutputDir, "stale.html"))
}

func TestBuildStaticOverridesTheme(t *testing.T) {
	b, root := newProject(t)
	writeFile(t, root, "static/css/custom.css", "body{}")

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "body{}", readFile(t, b.Config.OutputDir, "css/custom.css"))
}

func TestBuildWithFeatureOverride(t *testing.T) {
	b, _ := newProject(t)
	b.Features = features.English()

	_, err := b.Build(context.Background())
	require.NoError(t, err)

	home := readFile(t, b.Config.OutputDir, "index.html")
	coach := strings.Index(home, "Learn with a Technical Coach")
	community := strings.Index(home, "Learn in Community")
	top := strings.Index(home, "Climb to the Top")
	require.NotEqual(t, -1, coach)
	assert.Less(t, coach, community)
	assert.Less(t, community, top)
}

func TestBuildWithoutFeatures(t *testing.T) {
	b, _ := newProject(t)
	b.Features = []features.FeatureItem{}

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, report.Pages)
	assert.NotContains(t, readFile(t, b.Config.OutputDir, "index.html"), "col--4")
}

func TestBuildMissingAsset(t *testing.T) {
	b, root := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "static", "img", "climb-to-the-top.png")))

	_, err := b.Build(context.Background())
	require.ErrorIs(t, err, assets.ErrMissingAsset)
	assert.Contains(t, err.Error(), "img/climb-to-the-top.png")
}

func TestBuildInvalidConfig(t *testing.T) {
	b, _ := newProject(t)
	b.Site.URL = ""

	_, err := b.Build(context.Background())
	require.ErrorIs(t, err, siteconfig.ErrInvalidConfig)
	assert.NoDirExists(t, b.Config.OutputDir)
}

func TestBuildBrokenLinks(t *testing.T) {
	b, root := newProject(t)
	writeFile(t, root, "content/docs/extra.md", "Ver [nada](/docs/nowhere).\n")

	_, err := b.Build(context.Background())
	require.ErrorIs(t, err, ErrBrokenLink)
	assert.Contains(t, err.Error(), "/docs/extra/index.html -> /docs/nowhere")

	b.Site.OnBrokenLinks = siteconfig.PolicyWarn
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, report.BrokenLinks, 1)
	assert.Equal(t, "/docs/nowhere", report.BrokenLinks[0].Target)

	b.Site.OnBrokenLinks = siteconfig.PolicyIgnore
	_, err = b.Build(context.Background())
	require.NoError(t, err)
}

func TestBuildWithoutIntroDoc(t *testing.T) {
	b, root := newProject(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "content")))

	// the call to action and footer point at /docs/intro
	_, err := b.Build(context.Background())
	require.ErrorIs(t, err, ErrBrokenLink)
	assert.Contains(t, err.Error(), "/index.html -> /docs/intro")
}

func TestBuildRejectsDuplicatePages(t *testing.T) {
	b, root := newProject(t)
	writeFile(t, root, "content/docs/guide/index.md", "# Otra guía\n")

	_, err := b.Build(context.Background())
	require.ErrorIs(t, err, content.ErrDuplicatePermalink)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "content", "docs", "guide")))
	writeFile(t, root, "content/blog/index.md", "Portada del blog.\n")
	_, err = b.Build(context.Background())
	require.ErrorIs(t, err, content.ErrDuplicatePermalink)
}

func TestBuildDrafts(t *testing.T) {
	b, root := newProject(t)
	writeFile(t, root, "content/blog/2024-02-01-pronto.md", "---\ntitle: Pronto\ndraft: true\n---\nEn preparación.\n")

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Posts)
	assert.NoFileExists(t, filepath.Join(b.Config.OutputDir, "blog", "pronto", "index.html"))

	b.Config.Drafts = true
	report, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Posts)
	assert.Contains(t, readFile(t, b.Config.OutputDir, "blog/pronto/index.html"), "En preparación.")
}

func TestPermalinkFile(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "intro", "index.html"), permalinkFile("/docs/intro/"))
	assert.Equal(t, "index.html", permalinkFile("/"))
}
