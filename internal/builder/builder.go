// Package builder turns the site configuration, home page highlights,
// Markdown content and static files into a directory of static HTML.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	g "maragu.dev/gomponents"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/assets"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/config"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/content"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/features"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/linkcheck"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/model"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/pages"
	"github.com/codescouts-academy/clean-architecture-libraries/internal/siteconfig"
)

var ErrBrokenLink = errors.New("broken link")

// Builder runs one build. The zero value of Now means time.Now.
type Builder struct {
	Config   config.Config
	Site     siteconfig.Config
	Features []features.FeatureItem
	Logger   *zap.Logger
	Now      func() time.Time
}

// Report summarises a finished build.
type Report struct {
	Pages       int
	Assets      int
	Docs        int
	Posts       int
	BrokenLinks []linkcheck.Broken
}

// Build writes the site to Config.OutputDir, replacing whatever was there.
func (b *Builder) Build(ctx context.Context) (Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}
	var report Report

	if err := b.Site.Validate(); err != nil {
		return report, err
	}

	items := b.Features
	if items == nil {
		items = features.ForLocale(b.Site.Lang())
	}

	out := b.Config.OutputDir
	if out == "" {
		return report, errors.New("output directory is not set")
	}
	logger.Info("cleaning output directory", zap.String("dir", out))
	if err := os.RemoveAll(out); err != nil {
		return report, fmt.Errorf("failed to remove output directory '%s': %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return report, fmt.Errorf("failed to create output directory '%s': %w", out, err)
	}

	if err := assets.WriteTheme(filepath.Join(out, filepath.FromSlash(b.Site.Presets.Theme.CustomCSS))); err != nil {
		return report, fmt.Errorf("failed to write theme stylesheet: %w", err)
	}
	report.Assets++

	if _, err := os.Stat(b.Config.StaticDir); err == nil {
		n, err := assets.CopyDir(logger, b.Config.StaticDir, out)
		if err != nil {
			return report, fmt.Errorf("failed to copy static assets: %w", err)
		}
		report.Assets += n
		logger.Info("static assets copied", zap.String("from", b.Config.StaticDir), zap.Int("files", n))
	} else if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("static assets directory not found, skipping copy", zap.String("dir", b.Config.StaticDir))
	} else {
		return report, fmt.Errorf("failed to stat static directory: %w", err)
	}

	refs := append(features.Images(items), b.Site.Favicon, b.Site.ThemeConfig.Navbar.Logo.Src)
	if err := assets.Require(out, refs...); err != nil {
		return report, err
	}

	loader := &content.Loader{
		Logger:                logger,
		OnBrokenMarkdownLinks: b.Site.OnBrokenMarkdownLinks,
		IncludeDrafts:         b.Config.Drafts,
	}
	docs, err := loader.Load(ctx, b.Config.ContentDir)
	if err != nil {
		return report, err
	}
	site := &model.SiteData{
		Features:     items,
		ContentItems: docs,
	}
	site.Index()
	report.Docs = len(site.Docs)
	report.Posts = len(site.Posts)
	logger.Info("content collected", zap.Int("docs", report.Docs), zap.Int("posts", report.Posts))

	shell := pages.Shell{Config: b.Site, Year: now().Year()}
	if first := site.FirstDoc(); first != nil {
		shell.FirstDoc = b.Site.Path(first.Permalink)
	}

	var written atomic.Int64
	write := func(rel string, node g.Node) error {
		if err := writePage(filepath.Join(out, rel), node); err != nil {
			return err
		}
		written.Add(1)
		logger.Debug("page generated", zap.String("path", rel))
		return nil
	}

	if err := write("index.html", pages.Home(shell, site.Features)); err != nil {
		return report, err
	}
	if err := write("404.html", pages.NotFound(shell)); err != nil {
		return report, err
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())
	for _, doc := range site.Docs {
		doc := doc
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return write(permalinkFile(doc.Permalink), pages.Doc(shell, site.Docs, doc))
		})
	}
	for _, post := range site.Posts {
		post := post
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return write(permalinkFile(post.Permalink), pages.BlogPost(shell, post))
		})
	}
	if err := grp.Wait(); err != nil {
		return report, err
	}
	if len(site.Posts) > 0 {
		if err := write(permalinkFile(model.BlogIndexPermalink), pages.BlogList(shell, site.Posts)); err != nil {
			return report, err
		}
	}
	report.Pages = int(written.Load())

	broken, err := linkcheck.Check(out, b.Site.BaseURL)
	if err != nil {
		return report, fmt.Errorf("failed to check links: %w", err)
	}
	report.BrokenLinks = broken
	if len(broken) > 0 {
		switch b.Site.OnBrokenLinks {
		case siteconfig.PolicyThrow:
			targets := make([]string, len(broken))
			for i, bl := range broken {
				targets[i] = bl.String()
			}
			return report, fmt.Errorf("%w: %s", ErrBrokenLink, strings.Join(targets, ", "))
		case siteconfig.PolicyWarn:
			for _, bl := range broken {
				logger.Warn("broken link", zap.String("page", bl.Page), zap.String("target", bl.Target))
			}
		}
	}

	logger.Info("build completed", zap.Int("pages", report.Pages), zap.Int("assets", report.Assets))
	return report, nil
}

// permalinkFile maps /docs/intro/ to docs/intro/index.html.
func permalinkFile(permalink string) string {
	p := strings.Trim(permalink, "/")
	return filepath.Join(filepath.FromSlash(p), "index.html")
}

func writePage(path string, node g.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", path, err)
	}
	if err := pages.Write(f, node); err != nil {
		f.Close()
		return fmt.Errorf("failed to render '%s': %w", path, err)
	}
	return f.Close()
}
