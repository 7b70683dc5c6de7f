package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.py")
	content := "import os\nprint('hi')\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, src.Path)
	assert.Equal(t, []byte(content), src.Content)
	// trailing newline yields a final empty line
	assert.Equal(t, []string{"import os", "print('hi')", ""}, src.Lines)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestLine(t *testing.T) {
	src := &SourceFile{Lines: []string{"first", "second"}}

	assert.Equal(t, "first", src.Line(1))
	assert.Equal(t, "second", src.Line(2))
	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(3))
}
