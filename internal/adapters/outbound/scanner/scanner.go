package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/openkraft/csvcheck/internal/domain"
)

const walkConcurrency = 8

// FileScanner implements domain.FileSystem by walking the filesystem.
type FileScanner struct {
	exclude map[string]bool
}

// New creates a FileScanner. Files and directories whose base name matches
// one of excludePaths are left out of listings.
func New(excludePaths ...string) *FileScanner {
	exclude := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		p = strings.TrimSuffix(p, "/")
		if p != "" {
			exclude[p] = true
		}
	}
	return &FileScanner{exclude: exclude}
}

// ResolveCanonicalPath returns the absolute, symlink-resolved form of path
// when it is an existing directory.
func (s *FileScanner) ResolveCanonicalPath(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, true
	}
	return abs, true
}

// ListFiles enumerates every file beneath root. Paths are relative to root
// and slash-separated; directories are not listed. Top-level entries are
// walked in parallel and the result is sorted.
func (s *FileScanner) ListFiles(root string) (*domain.FileListing, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		files []string
		total int64
		g     errgroup.Group
	)
	g.SetLimit(walkConcurrency)

	add := func(rel string, size int64) {
		mu.Lock()
		files = append(files, filepath.ToSlash(rel))
		total += size
		mu.Unlock()
	}

	for _, entry := range entries {
		if s.exclude[entry.Name()] {
			continue
		}
		if !entry.IsDir() {
			if size, ok := fileSize(filepath.Join(root, entry.Name()), entry); ok {
				add(entry.Name(), size)
			}
			continue
		}
		dir := filepath.Join(root, entry.Name())
		g.Go(func() error {
			return s.walk(root, dir, add)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return &domain.FileListing{Root: root, Files: files, TotalBytes: total}, nil
}

func (s *FileScanner) walk(root, dir string, add func(string, int64)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if s.exclude[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		size, ok := fileSize(path, d)
		if !ok {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		add(relPath, size)
		return nil
	})
}

// fileSize returns the size of the file at path, following symlinks.
// ok is false for links to directories, which are neither listed nor
// descended into.
func fileSize(path string, d fs.DirEntry) (int64, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			// Dangling link.
			return 0, true
		}
		if info.IsDir() {
			return 0, false
		}
		return info.Size(), true
	}
	info, err := d.Info()
	if err != nil {
		return 0, true
	}
	return info.Size(), true
}

// Exists reports whether relativePath names an existing file or directory
// under root. Paths escaping root never exist.
func (s *FileScanner) Exists(root, relativePath string) bool {
	rel := filepath.FromSlash(relativePath)
	if root == "" || !filepath.IsLocal(rel) {
		return false
	}
	_, err := os.Stat(filepath.Join(root, rel))
	return err == nil
}
