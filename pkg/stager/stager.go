// Package stager copies the graph component's JavaScript sources into the
// directory the host bundler resolves them from.
//
// A copy happens when the destination file is missing or strictly older than
// its source. Copies keep the source modification time, so staging the same
// sources twice leaves the destination untouched. Embedded sources carry no
// modification time and are copied when the destination contents differ.
package stager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/recera/vango-sigma/internal/assets"
	"github.com/recera/vango-sigma/internal/logging"
	"github.com/recera/vango-sigma/internal/metrics"
)

// DefaultDir is the destination directory relative to the project root.
const DefaultDir = ".web/utils"

var (
	// ErrNoRoot is returned by Ensure when no destination root was configured.
	ErrNoRoot = errors.New("stager: destination root not set")
	// ErrNoSourceDir is returned by Watch when sources are not on disk.
	ErrNoSourceDir = errors.New("stager: watch requires a source directory")
)

// Config configures a Stager.
type Config struct {
	// Source provides the asset files. Ignored when SourceDir is set.
	// Defaults to the embedded assets.
	Source fs.FS

	// SourceDir reads assets from a directory on disk, which also enables Watch.
	SourceDir string

	// Root is the project root the destination directory is resolved against.
	Root string

	// Dir is the destination relative to Root (default ".web/utils").
	Dir string

	// Files lists the asset names to stage (default assets.Files).
	Files []string

	Logger *log.Logger
}

// Report describes the outcome of one Ensure call.
type Report struct {
	Copied   []string
	UpToDate []string
	Missing  []string
}

// Stager stages a fixed set of asset files.
type Stager struct {
	mu        sync.Mutex
	src       fs.FS
	sourceDir string
	root      string
	dir       string
	files     []string
	logger    *log.Logger
}

// New creates a Stager from cfg, filling in defaults.
func New(cfg Config) *Stager {
	s := &Stager{
		src:       cfg.Source,
		sourceDir: cfg.SourceDir,
		root:      cfg.Root,
		dir:       cfg.Dir,
		files:     cfg.Files,
		logger:    cfg.Logger,
	}
	if s.sourceDir != "" {
		s.src = os.DirFS(s.sourceDir)
	}
	if s.src == nil {
		s.src = assets.FS()
	}
	if s.dir == "" {
		s.dir = DefaultDir
	}
	if len(s.files) == 0 {
		s.files = assets.Files
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Dest returns the absolute or root-relative destination directory.
func (s *Stager) Dest() string {
	return filepath.Join(s.root, s.dir)
}

// Files returns the staged asset names.
func (s *Stager) Files() []string {
	return append([]string(nil), s.files...)
}

// Ensure creates the destination directory and copies every asset whose
// destination is missing or older than the source. A missing source is
// skipped without error. I/O failures are returned.
func (s *Stager) Ensure() (*Report, error) {
	if s.root == "" {
		return nil, ErrNoRoot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dest := s.Dest()
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dest, err)
	}

	report := &Report{}
	for _, name := range s.files {
		srcInfo, err := fs.Stat(s.src, name)
		if err != nil || srcInfo.IsDir() {
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return report, fmt.Errorf("stat source %s: %w", name, err)
			}
			s.logger.Warn("Asset source missing, skipping", "file", name)
			metrics.AssetsMissing.Inc()
			report.Missing = append(report.Missing, name)
			continue
		}

		destPath := filepath.Join(dest, name)
		destInfo, err := os.Stat(destPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return report, fmt.Errorf("stat %s: %w", destPath, err)
		}
		if err == nil {
			current, err := s.upToDate(name, srcInfo, destPath, destInfo)
			if err != nil {
				return report, err
			}
			if current {
				report.UpToDate = append(report.UpToDate, name)
				continue
			}
		}

		if err := s.copy(name, destPath, srcInfo.ModTime()); err != nil {
			return report, err
		}
		metrics.AssetsCopied.Inc()
		s.logger.Info("Copied asset", "file", name, "dest", destPath)
		report.Copied = append(report.Copied, name)
	}

	return report, nil
}

// upToDate reports whether destPath can be kept. Sources with a modification
// time are compared by mtime. Embedded sources have none, so their contents
// are compared instead.
func (s *Stager) upToDate(name string, srcInfo fs.FileInfo, destPath string, destInfo os.FileInfo) (bool, error) {
	if !srcInfo.ModTime().IsZero() {
		return !destInfo.ModTime().Before(srcInfo.ModTime()), nil
	}
	if destInfo.Size() != srcInfo.Size() {
		return false, nil
	}

	want, err := fs.ReadFile(s.src, name)
	if err != nil {
		return false, fmt.Errorf("read source %s: %w", name, err)
	}
	got, err := os.ReadFile(destPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", destPath, err)
	}
	return bytes.Equal(want, got), nil
}

// copy writes name to a temp file next to destPath and renames it into place.
func (s *Stager) copy(name, destPath string, modTime time.Time) error {
	in, err := s.src.Open(name)
	if err != nil {
		return fmt.Errorf("open source %s: %w", name, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("copy %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	// Embedded sources have no mtime; the copy keeps the time it was written.
	if !modTime.IsZero() {
		if err := os.Chtimes(tmpName, modTime, modTime); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("set times on %s: %w", tmpName, err)
		}
	}

	if err := os.Rename(tmpName, destPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", destPath, err)
	}
	return nil
}
