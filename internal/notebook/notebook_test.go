package notebook

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n", "\n", "Some notes"]},
    {"cell_type": "code", "source": ["import os\n", "print(os.getcwd())"]},
    {"cell_type": "raw", "source": "ignored"},
    {"cell_type": "code", "source": "x = 1"}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

func TestConvert(t *testing.T) {
	var out bytes.Buffer
	err := Convert(strings.NewReader(sampleNotebook), &out, "analysis.ipynb")
	require.NoError(t, err)

	expected := "# Converted from analysis.ipynb\n\n" +
		"# # Title\n#\n# Some notes\n\n" +
		"import os\nprint(os.getcwd())\n\n" +
		"x = 1\n\n"
	assert.Equal(t, expected, out.String())
}

func TestConvert_WhitespaceOnlyMarkdownLine(t *testing.T) {
	nb := `{"cells": [{"cell_type": "markdown", "source": "a\n   \nb"}]}`

	var out bytes.Buffer
	require.NoError(t, Convert(strings.NewReader(nb), &out, "n.ipynb"))
	assert.Equal(t, "# Converted from n.ipynb\n\n# a\n#\n# b\n\n", out.String())
}

func TestConvert_EmptyNotebook(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Convert(strings.NewReader(`{"cells": []}`), &out, "empty.ipynb"))
	assert.Equal(t, "# Converted from empty.ipynb\n\n", out.String())
}

func TestConvert_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "this is not json"},
		{"missing cells", `{"metadata": {}}`},
		{"bad source", `{"cells": [{"cell_type": "code", "source": 42}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Convert(strings.NewReader(tt.input), &out, "bad.ipynb")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidNotebook)
			assert.Empty(t, out.String())
		})
	}
}

func TestConvertFile_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "demo.ipynb")
	require.NoError(t, os.WriteFile(in, []byte(sampleNotebook), 0o644))

	written, err := ConvertFile(in, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo.py"), written)

	content, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Converted from "+in+"\n\n"))
	assert.Contains(t, string(content), "x = 1\n\n")
}

func TestConvertFile_ExplicitOutputPath(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "demo.ipynb")
	out := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(in, []byte(sampleNotebook), 0o644))

	written, err := ConvertFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, out, written)
	assert.FileExists(t, out)
	assert.NoFileExists(t, filepath.Join(dir, "demo.py"))
}

func TestConvertFile_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := ConvertFile(filepath.Join(dir, "missing.ipynb"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(dir, "missing.py"))
}

func TestConvertFile_InvalidLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.ipynb")
	require.NoError(t, os.WriteFile(in, []byte("{"), 0o644))

	_, err := ConvertFile(in, "")
	assert.ErrorIs(t, err, ErrInvalidNotebook)
	assert.NoFileExists(t, filepath.Join(dir, "broken.py"))
}

func TestScriptPath(t *testing.T) {
	assert.Equal(t, "a/b/demo.py", ScriptPath("a/b/demo.ipynb"))
	assert.Equal(t, "noext.py", ScriptPath("noext"))
}
