// Package assets copies the static files of the site into the build output
// and checks that referenced assets exist.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var ErrMissingAsset = errors.New("missing asset")

// Theme holds the stylesheet shipped with the tool. It is written to the
// output before static/, so a site can override it with its own file.
//
//go:embed theme/custom.css
var Theme embed.FS

const ThemeStylesheet = "theme/custom.css"

// WriteTheme writes the embedded stylesheet to dst.
func WriteTheme(dst string) error {
	data, err := Theme.ReadFile(ThemeStylesheet)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(dst), err)
	}
	return os.WriteFile(dst, data, 0o644)
}

// Require returns an error wrapping ErrMissingAsset naming every reference
// in refs that is not a file under dir.
func Require(dir string, refs ...string) error {
	var missing []string
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		p := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingAsset, strings.Join(missing, ", "))
	}
	return nil
}

// CopyDir recursively copies contents from src to dst and returns the number
// of files copied.
func CopyDir(logger *zap.Logger, src, dst string) (int, error) {
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(logger, path, dstPath); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", path, dstPath, err)
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(logger *zap.Logger, srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	dstDir := filepath.Dir(dstFile)
	if err := os.MkdirAll(dstDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dstDir, err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", srcFile, dstFile, err)
	}

	// Permissions are best effort.
	if srcInfo, err := os.Stat(srcFile); err == nil {
		if err := os.Chmod(dstFile, srcInfo.Mode()); err != nil {
			logger.Warn("could not set permissions", zap.String("file", dstFile), zap.Error(err))
		}
	}
	return nil
}
