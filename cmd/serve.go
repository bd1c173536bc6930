package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const rebuildDebounce = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds it on changes",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP under the site's baseUrl. Changes to ./content/,
./static/ or the site configuration trigger a rebuild. With --drafts, content
marked draft is rendered too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("performing initial build")
		if _, err := runBuild(ctx); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		for _, root := range []string{appConfig.ContentDir, appConfig.StaticDir} {
			watchTree(watcher, root)
		}
		// editors replace the file on save; follow its directory
		if dir := filepath.Dir(appConfig.SiteConfig); isDir(dir) {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("failed to watch site config", zap.String("file", appConfig.SiteConfig), zap.Error(err))
			}
		}

		var wg, pending sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			watchLoop(ctx, watcher, &pending, func() { rebuild(ctx) })
		}()
		defer pending.Wait()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", appConfig.Port),
			Handler:           newSiteHandler(appConfig.OutputDir, siteConfig.BaseURL),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving site",
				zap.String("dir", appConfig.OutputDir),
				zap.String("url", fmt.Sprintf("http://localhost:%d%s", appConfig.Port, siteConfig.BaseURL)))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			stop()
			wg.Wait()
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to start HTTP server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
		wg.Wait()
		return err
	},
}

// watchTree adds root and every directory below it to w.
func watchTree(w *fsnotify.Watcher, root string) {
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		logger.Debug("directory not found, not watching", zap.String("dir", root))
		return
	}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", zap.String("path", p), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && (p == appConfig.OutputDir || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			logger.Warn("failed to watch directory", zap.String("dir", p), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		logger.Warn("error during initial directory walk", zap.String("dir", root), zap.Error(err))
	}
}

// watchLoop calls onChange once changes under the watched paths settle.
// pending counts scheduled and running onChange calls.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, pending *sync.WaitGroup, onChange func()) {
	var timer *time.Timer
	defer func() {
		if timer != nil && timer.Stop() {
			pending.Done()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !watchedPath(event.Name) {
				continue
			}
			logger.Info("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				watchTree(w, event.Name)
			}
			if timer != nil && timer.Stop() {
				pending.Done()
			}
			pending.Add(1)
			timer = time.AfterFunc(rebuildDebounce, func() {
				defer pending.Done()
				onChange()
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchedPath reports whether a change to name should trigger a rebuild:
// anything under the content or static directories, or the site config
// itself, but never the build output.
func watchedPath(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if within(abs, appConfig.OutputDir) {
		return false
	}
	if site, err := filepath.Abs(appConfig.SiteConfig); err == nil && abs == site {
		return true
	}
	return within(abs, appConfig.ContentDir) || within(abs, appConfig.StaticDir)
}

// within reports whether abs is dir or below it.
func within(abs, dir string) bool {
	if dir == "" {
		return false
	}
	d, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(d, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

var rebuildMu sync.Mutex

func rebuild(ctx context.Context) {
	rebuildMu.Lock()
	defer rebuildMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	logger.Info("rebuilding site")
	if err := loadSiteConfig(appConfig.SiteConfig); err != nil {
		logger.Error("failed to reload site config", zap.Error(err))
		return
	}
	// runs to completion once started; serve waits for it before exiting
	if _, err := runBuild(context.WithoutCancel(ctx)); err != nil {
		logger.Error("rebuild failed", zap.Error(err))
		return
	}
	logger.Info("site rebuilt")
}

// newSiteHandler serves dir under baseURL without directory listings or
// caching. Unknown paths get 404.html when the build produced one.
func newSiteHandler(dir, baseURL string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	site := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		local := filepath.Join(dir, filepath.FromSlash(p))
		info, err := os.Stat(local)
		if err == nil && info.IsDir() {
			_, err = os.Stat(filepath.Join(local, "index.html"))
		}
		if err != nil {
			notFound(w, dir)
			return
		}
		files.ServeHTTP(w, r)
	})

	base := strings.TrimSuffix("/"+strings.Trim(baseURL, "/"), "/")
	stripped := http.StripPrefix(base, site)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if base == "" {
			site.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/" || r.URL.Path == base {
			http.Redirect(w, r, base+"/", http.StatusFound)
			return
		}
		if !strings.HasPrefix(r.URL.Path, base+"/") {
			notFound(w, dir)
			return
		}
		stripped.ServeHTTP(w, r)
	})
}

func notFound(w http.ResponseWriter, dir string) {
	page, err := os.ReadFile(filepath.Join(dir, "404.html"))
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func isDir(name string) bool {
	fileInfo, err := os.Stat(name)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntP("port", "p", 3000, "Port to serve the site on")
	serveCmd.Flags().Bool("drafts", false, "Render content marked as draft")
	rootCmd.AddCommand(serveCmd)
}
