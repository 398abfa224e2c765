package project

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystemJSONKeepsRootOrder(t *testing.T) {
	fs := NewFileSystem(NewFolder("Zeta"), NewFolder("Alpha"), NewFolder("Mid"))
	fs.Roots[1].AddChild(NewFile("a.go", "package a"))

	data, err := json.Marshal(fs)
	require.NoError(t, err)

	var back FileSystem
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Roots, 3)
	assert.Equal(t, "Zeta", back.Roots[0].Name)
	assert.Equal(t, "Alpha", back.Roots[1].Name)
	assert.Equal(t, "Mid", back.Roots[2].Name)
	assert.Empty(t, cmp.Diff(fs, &back, ignoreTimes))
}

func TestFileSystemLegacyRoot(t *testing.T) {
	legacy := `{"root": {"type": "folder", "name": "Old", "children": {
		"main.go": {"type": "file", "name": "stale", "content": "package main"},
		"lib": {"children": {}}
	}}}`

	var fs FileSystem
	require.NoError(t, json.Unmarshal([]byte(legacy), &fs))
	require.Len(t, fs.Roots, 1)
	assert.True(t, fs.Roots[0].IsRoot)

	main, err := Resolve(&fs, ParsePath("Old/main.go"))
	require.NoError(t, err)
	assert.Equal(t, "main.go", main.Name, "名称以键为准")
	assert.Equal(t, "go", main.Language)

	lib, err := Resolve(&fs, ParsePath("Old/lib"))
	require.NoError(t, err)
	assert.True(t, lib.IsFolder())

	data, err := json.Marshal(&fs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roots"`)
	assert.NotContains(t, string(data), `"root":`)
}

func TestFileSystemEmptyAndBad(t *testing.T) {
	var fs FileSystem
	require.NoError(t, json.Unmarshal([]byte(`{}`), &fs))
	assert.True(t, fs.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"roots": null}`), &fs))
	assert.True(t, fs.Empty())

	assert.Error(t, json.Unmarshal([]byte(`{"roots": []}`), &fs))
}

func TestDefaultFileSystem(t *testing.T) {
	fs := DefaultFileSystem()
	require.Len(t, fs.Roots, 1)
	assert.Equal(t, "My Project", fs.Roots[0].Name)

	idx, err := Resolve(fs, ParsePath("My Project/src/index.js"))
	require.NoError(t, err)
	assert.Equal(t, "javascript", idx.Language)
	ed, err := Resolve(fs, ParsePath("My Project/src/components/Editor.jsx"))
	require.NoError(t, err)
	assert.Equal(t, "javascript", ed.Language)

	files, folders := Count(fs)
	assert.Equal(t, 3, files)
	assert.Equal(t, 3, folders)
}
