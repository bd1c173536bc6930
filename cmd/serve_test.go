package cmd

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescouts-academy/clean-architecture-libraries/internal/config"
)

func siteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "intro"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "404.html"), []byte("not found page"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "intro", "index.html"), []byte("intro"), 0o644))
	return dir
}

// getter fetches paths from srv without following redirects.
func getter(t *testing.T, srv *httptest.Server) func(string) (int, string, http.Header) {
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	return func(p string) (int, string, http.Header) {
		t.Helper()
		resp, err := client.Get(srv.URL + p)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body), resp.Header
	}
}

func TestSiteHandler(t *testing.T) {
	srv := httptest.NewServer(newSiteHandler(siteDir(t), "/"))
	defer srv.Close()
	get := getter(t, srv)

	code, body, header := get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "home", body)
	assert.Equal(t, "no-cache, no-store, must-revalidate", header.Get("Cache-Control"))

	code, body, _ = get("/docs/intro/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "intro", body)

	code, body, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not found page", body)

	// directories without an index are not listed
	code, body, _ = get("/img/")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not found page", body)
}

func TestSiteHandlerUnderBaseURL(t *testing.T) {
	srv := httptest.NewServer(newSiteHandler(siteDir(t), "/library/"))
	defer srv.Close()
	get := getter(t, srv)

	code, body, header := get("/library/docs/intro/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "intro", body)
	assert.Equal(t, "no-cache, no-store, must-revalidate", header.Get("Cache-Control"))

	code, body, _ = get("/library/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "home", body)

	for _, p := range []string{"/", "/library"} {
		code, _, header = get(p)
		assert.Equal(t, http.StatusFound, code, p)
		assert.Equal(t, "/library/", header.Get("Location"), p)
	}

	for _, p := range []string{"/docs/intro/", "/libraryx/docs/intro/", "/library/missing"} {
		code, body, _ = get(p)
		assert.Equal(t, http.StatusNotFound, code, p)
		assert.Equal(t, "not found page", body, p)
	}
}

func TestSiteHandlerWithoutNotFoundPage(t *testing.T) {
	srv := httptest.NewServer(newSiteHandler(t.TempDir(), "/"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// useDirs points the tool configuration at a project under root for the
// duration of the test.
func useDirs(t *testing.T, root string) {
	t.Helper()
	saved := appConfig
	t.Cleanup(func() { appConfig = saved })
	appConfig = config.Config{
		SiteConfig: filepath.Join(root, "site.yaml"),
		OutputDir:  filepath.Join(root, "build"),
		ContentDir: filepath.Join(root, "content"),
		StaticDir:  filepath.Join(root, "static"),
	}
}

func TestWatchedPath(t *testing.T) {
	root := t.TempDir()
	useDirs(t, root)

	for _, tc := range []struct {
		name string
		want bool
	}{
		{"content/docs/intro.md", true},
		{"content", true},
		{"static/img/logo.png", true},
		{"site.yaml", true},
		{"build/index.html", false},
		{"build", false},
		{"build2/index.html", false},
		{"content2/docs/intro.md", false},
		{"notes.md", false},
	} {
		assert.Equal(t, tc.want, watchedPath(filepath.Join(root, filepath.FromSlash(tc.name))), tc.name)
	}

	// a sibling of the output directory is not part of it
	appConfig.StaticDir = filepath.Join(root, "build2")
	assert.True(t, watchedPath(filepath.Join(root, "build2", "index.html")))
}

func TestWithin(t *testing.T) {
	root := t.TempDir()
	assert.True(t, within(filepath.Join(root, "build"), filepath.Join(root, "build")))
	assert.True(t, within(filepath.Join(root, "build", "a", "b"), filepath.Join(root, "build")))
	assert.False(t, within(filepath.Join(root, "build2"), filepath.Join(root, "build")))
	assert.False(t, within(filepath.Join(root, "..build"), filepath.Join(root, "build")))
	assert.False(t, within(root, filepath.Join(root, "build")))
	assert.False(t, within(root, ""))
}

func TestWatchLoopWaitsForRebuild(t *testing.T) {
	root := t.TempDir()
	useDirs(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(appConfig.ContentDir, "docs"), 0o755))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	watchTree(w, appConfig.ContentDir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var pending sync.WaitGroup
	var calls atomic.Int32
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, w, &pending, func() {
			calls.Add(1)
			<-release
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(appConfig.ContentDir, "docs", "intro.md"), []byte("hola"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	<-done

	waited := make(chan struct{})
	go func() {
		pending.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		t.Fatal("returned while a rebuild was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild never finished")
	}
}

func TestWatchLoopIgnoresOutput(t *testing.T) {
	root := t.TempDir()
	useDirs(t, root)
	require.NoError(t, os.MkdirAll(appConfig.OutputDir, 0o755))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(root))
	require.NoError(t, w.Add(appConfig.OutputDir))

	ctx, cancel := context.WithCancel(context.Background())
	var pending sync.WaitGroup
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(ctx, w, &pending, func() { calls.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(appConfig.OutputDir, "index.html"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))
	time.Sleep(2 * rebuildDebounce)

	cancel()
	<-done
	pending.Wait()
	assert.Zero(t, calls.Load())
}
