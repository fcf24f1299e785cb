package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"scene.html", "html"},
		{"index.HTM", "html"},
		{"app.js", "javascript"},
		{"worker.mjs", "javascript"},
		{"types.ts", "typescript"},
		{"style.css", "css"},
		{"data.json", "json"},
		{"README.md", "markdown"},
		{"main.go", "go"},
		{"tool.py", "python"},
		{"notes.txt", "text"},
		{"Makefile", "text"},
	}

	for _, tc := range cases {
		t.Run(tc.fileName, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectLanguage(tc.fileName))
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.html")
	require.NoError(t, os.WriteFile(path, []byte("<a-scene></a-scene>\n"), 0o644))

	buf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "<a-scene></a-scene>\n", buf.Content())
	assert.Equal(t, "scene.html", buf.FileName())
	assert.Equal(t, "html", buf.Language())
	assert.False(t, buf.Dirty())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.html"))
	assert.Error(t, err)
}

func TestReplaceMarksDirty(t *testing.T) {
	buf := NewBuffer("scene.html", "old")

	buf.Replace("new content")

	assert.Equal(t, "new content", buf.Content())
	assert.True(t, buf.Dirty())
}

func TestSaveWritesAndClearsDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	buf, err := Load(path)
	require.NoError(t, err)

	buf.Replace("<html></html>")
	require.NoError(t, buf.Save())

	assert.False(t, buf.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 0, NewBuffer("a.txt", "").LineCount())
	assert.Equal(t, 1, NewBuffer("a.txt", "one").LineCount())
	assert.Equal(t, 2, NewBuffer("a.txt", "one\ntwo").LineCount())
	assert.Equal(t, 3, NewBuffer("a.txt", "one\ntwo\n").LineCount())
}
