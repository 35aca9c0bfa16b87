package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templpad/templpad/compiler/models"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadProjectFiles_TypesAndOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "widgets.tpl", "@component Widget\n")
	writeFile(t, root, "main.tpl", "<Widget/>\n")
	writeFile(t, root, "helpers.js", "export function sum(a, b) { return a + b; }\n")
	writeFile(t, root, "notes.txt", "not a source file\n")

	files, err := LoadProjectFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// main.tpl leads so it receives the provider scaffolding; the rest sort.
	assert.Equal(t, "main.tpl", files[0].Path)
	assert.Equal(t, models.Template, files[0].Type)
	assert.Equal(t, "helpers.js", files[1].Path)
	assert.Equal(t, models.PlainSource, files[1].Type)
	assert.Equal(t, "widgets.tpl", files[2].Path)
	assert.Equal(t, "<Widget/>\n", files[0].Content)
}

func TestLoadProjectFiles_NestedMainNotPromoted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.tpl", "Hello\n")
	writeFile(t, root, "pages/main.tpl", "Nested\n")

	files, err := LoadProjectFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "app.tpl", files[0].Path)
	assert.Equal(t, "pages/main.tpl", files[1].Path)
}

func TestLoadProjectFiles_DefaultIgnores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.tpl", "Hello\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {};\n")
	writeFile(t, root, ".git/config.js", "ignored\n")

	files, err := LoadProjectFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.tpl", files[0].Path)
}

func TestLoadProjectFiles_IgnoreFilePatterns(t *testing.T) {
	ClearIgnoreCache()
	root := t.TempDir()
	writeFile(t, root, ".templpad-ignore", "# scratch files\ndraft.tpl\n")
	writeFile(t, root, "main.tpl", "Hello\n")
	writeFile(t, root, "draft.tpl", "Scratch\n")

	files, err := LoadProjectFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.tpl", files[0].Path)
}

func TestLoadProjectFiles_EmptyDir(t *testing.T) {
	files, err := LoadProjectFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestIsIgnored_DirectoryPattern(t *testing.T) {
	patterns := []string{"scratch/", "*.tmp.tpl"}

	assert.True(t, IsIgnored("scratch/page.tpl", patterns))
	assert.True(t, IsIgnored("old.tmp.tpl", patterns))
	assert.False(t, IsIgnored("main.tpl", patterns))
}
