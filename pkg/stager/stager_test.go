package stager

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recera/vango-sigma/internal/assets"
	"github.com/recera/vango-sigma/internal/logging"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sourceFS(modTime time.Time) fstest.MapFS {
	return fstest.MapFS{
		assets.WrapperJSX: {Data: []byte("export const wrapper = 1;\n"), ModTime: modTime},
		assets.ViewerJSX:  {Data: []byte("export default function Viewer() {}\n"), ModTime: modTime},
	}
}

func readDest(t *testing.T, s *Stager, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(s.Dest(), name))
	require.NoError(t, err)
	return b
}

func modTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}

func TestEnsureCreatesDestination(t *testing.T) {
	src := sourceFS(baseTime)
	root := filepath.Join(t.TempDir(), "nested", "project")
	s := New(Config{Source: src, Root: root})

	report, err := s.Ensure()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, ".web", "utils"), s.Dest())
	assert.ElementsMatch(t, assets.Files, report.Copied)
	assert.Empty(t, report.Missing)
	for _, name := range assets.Files {
		assert.Equal(t, src[name].Data, readDest(t, s, name))
	}
}

func TestEnsureSecondCallIsNoop(t *testing.T) {
	src := sourceFS(baseTime)
	s := New(Config{Source: src, Root: t.TempDir()})

	_, err := s.Ensure()
	require.NoError(t, err)

	before := make(map[string]time.Time)
	for _, name := range assets.Files {
		before[name] = modTime(t, filepath.Join(s.Dest(), name))
		assert.True(t, before[name].Equal(baseTime), "copy should keep the source mtime")
	}

	report, err := s.Ensure()
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
	assert.ElementsMatch(t, assets.Files, report.UpToDate)

	for _, name := range assets.Files {
		assert.True(t, before[name].Equal(modTime(t, filepath.Join(s.Dest(), name))))
		assert.Equal(t, src[name].Data, readDest(t, s, name))
	}
}

func TestEnsureOverwritesOnlyWhenSourceNewer(t *testing.T) {
	tests := []struct {
		name      string
		srcTime   time.Time
		overwrite bool
	}{
		{"source older", baseTime.Add(-time.Hour), false},
		{"source same age", baseTime, false},
		{"source newer", baseTime.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{
				Source: fstest.MapFS{
					assets.WrapperJSX: {Data: []byte("new"), ModTime: tt.srcTime},
				},
				Root:  t.TempDir(),
				Files: []string{assets.WrapperJSX},
			})

			require.NoError(t, os.MkdirAll(s.Dest(), 0o755))
			dest := filepath.Join(s.Dest(), assets.WrapperJSX)
			require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))
			require.NoError(t, os.Chtimes(dest, baseTime, baseTime))

			report, err := s.Ensure()
			require.NoError(t, err)

			if tt.overwrite {
				assert.Equal(t, []string{assets.WrapperJSX}, report.Copied)
				assert.Equal(t, "new", string(readDest(t, s, assets.WrapperJSX)))
				assert.True(t, modTime(t, dest).Equal(tt.srcTime))
			} else {
				assert.Empty(t, report.Copied)
				assert.Equal(t, "old", string(readDest(t, s, assets.WrapperJSX)))
				assert.True(t, modTime(t, dest).Equal(baseTime))
			}
		})
	}
}

func TestEnsureSkipsMissingSource(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{
		Source: fstest.MapFS{
			assets.WrapperJSX: {Data: []byte("wrapper"), ModTime: baseTime},
		},
		Root:   t.TempDir(),
		Logger: logging.New(&buf, log.InfoLevel),
	})

	report, err := s.Ensure()
	require.NoError(t, err)

	assert.Equal(t, []string{assets.WrapperJSX}, report.Copied)
	assert.Equal(t, []string{assets.ViewerJSX}, report.Missing)
	assert.NoFileExists(t, filepath.Join(s.Dest(), assets.ViewerJSX))
	assert.Contains(t, buf.String(), "missing")
}

func TestEnsureLogsEachCopy(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{
		Source: sourceFS(baseTime),
		Root:   t.TempDir(),
		Logger: logging.New(&buf, log.InfoLevel),
	})

	_, err := s.Ensure()
	require.NoError(t, err)
	for _, name := range assets.Files {
		assert.Contains(t, buf.String(), name)
	}
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Copied asset")))

	buf.Reset()
	_, err = s.Ensure()
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Copied asset")
}

func TestEnsureRequiresRoot(t *testing.T) {
	_, err := New(Config{Source: sourceFS(baseTime)}).Ensure()
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestEnsureDirectoryError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".web"), []byte("not a dir"), 0o644))

	_, err := New(Config{Source: sourceFS(baseTime), Root: root}).Ensure()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestEnsureEmbeddedAssets(t *testing.T) {
	s := New(Config{Root: t.TempDir()})

	report, err := s.Ensure()
	require.NoError(t, err)
	assert.ElementsMatch(t, assets.Files, report.Copied)

	want, err := os.ReadFile(filepath.Join("..", "..", "internal", "assets", assets.ViewerJSX))
	require.NoError(t, err)
	assert.Equal(t, want, readDest(t, s, assets.ViewerJSX))

	report, err = s.Ensure()
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
}

func TestEnsureEmbeddedRefreshesStaleDestination(t *testing.T) {
	s := New(Config{Root: t.TempDir()})
	require.NoError(t, os.MkdirAll(s.Dest(), 0o755))

	stale := filepath.Join(s.Dest(), assets.ViewerJSX)
	require.NoError(t, os.WriteFile(stale, []byte("// old release\n"), 0o644))
	yearAgo := time.Now().Add(-365 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, yearAgo, yearAgo))

	report, err := s.Ensure()
	require.NoError(t, err)
	assert.ElementsMatch(t, assets.Files, report.Copied)
	assert.Empty(t, report.UpToDate)

	want, err := fs.ReadFile(assets.FS(), assets.ViewerJSX)
	require.NoError(t, err)
	assert.Equal(t, want, readDest(t, s, assets.ViewerJSX))

	report, err = s.Ensure()
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
	assert.ElementsMatch(t, assets.Files, report.UpToDate)
}

func TestEnsureEmbeddedKeepsMatchingDestination(t *testing.T) {
	s := New(Config{Root: t.TempDir()})
	_, err := s.Ensure()
	require.NoError(t, err)

	dest := filepath.Join(s.Dest(), assets.WrapperJSX)
	yearAgo := time.Now().Add(-365 * 24 * time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(dest, yearAgo, yearAgo))

	report, err := s.Ensure()
	require.NoError(t, err)
	assert.Empty(t, report.Copied)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(yearAgo))
}

func TestEnsureFromSourceDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range assets.Files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		require.NoError(t, os.Chtimes(path, baseTime, baseTime))
	}

	s := New(Config{SourceDir: dir, Root: t.TempDir(), Dir: "build/js"})
	report, err := s.Ensure()
	require.NoError(t, err)

	assert.ElementsMatch(t, assets.Files, report.Copied)
	assert.DirExists(t, filepath.Join(s.root, "build", "js"))
	assert.Equal(t, assets.ViewerJSX, string(readDest(t, s, assets.ViewerJSX)))
}
