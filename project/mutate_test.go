package project

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{
		"index.js": true, "index1.js": true,
		"src": true, "Makefile": true, ".env": true, "a.tar.gz": true,
	}
	has := func(s string) bool { return taken[s] }

	tests := []struct {
		name string
		typ  NodeType
		want string
	}{
		{"fresh.js", TypeFile, "fresh.js"},
		{"index.js", TypeFile, "index2.js"},
		{"src", TypeFolder, "src1"},
		{"Makefile", TypeFile, "Makefile1"},
		{".env", TypeFile, ".env1"},
		{"a.tar.gz", TypeFile, "a.tar1.gz"},
		{"index.js", TypeFolder, "index.js1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueName(has, tt.name, tt.typ))
		})
	}
}

func TestCreateNode(t *testing.T) {
	freezeClock(t)
	fs := NewFileSystem(NewFolder("Project"))
	fs.Roots[0].AddChild(NewFolder("src"))
	before := snapshotBytes(t, fs)

	next, name, err := CreateNode(fs, Path{"Project"}, "index.js", TypeFile, "")
	require.NoError(t, err)
	assert.Equal(t, "index.js", name)
	f, err := Resolve(next, ParsePath("Project/index.js"))
	require.NoError(t, err)
	assert.Equal(t, "javascript", f.Language)
	assert.False(t, f.CreatedAt.IsZero())
	assert.Equal(t, f.CreatedAt, f.UpdatedAt)

	next, name, err = CreateNode(next, Path{"Project"}, "index.js", TypeFile, "x")
	require.NoError(t, err)
	assert.Equal(t, "index1.js", name)

	next, name, err = CreateNode(next, Path{"Project"}, "src", TypeFolder, "")
	require.NoError(t, err)
	assert.Equal(t, "src1", name)

	assert.Equal(t, before, snapshotBytes(t, fs), "原快照不能被修改")
	assert.Len(t, next.Roots[0].Children, 4)
}

func TestCreateNodeFailuresAreAtomic(t *testing.T) {
	fs := sampleFS()
	before := snapshotBytes(t, fs)

	_, _, err := CreateNode(fs, ParsePath("Project/README.md"), "x.js", TypeFile, "")
	assert.ErrorIs(t, err, ErrInvalidParent)
	_, _, err = CreateNode(fs, ParsePath("Project/nope"), "x.js", TypeFile, "")
	assert.ErrorIs(t, err, ErrInvalidParent)
	_, _, err = CreateNode(fs, Path{"Project"}, "a/b", TypeFile, "")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, _, err = CreateNode(fs, Path{"Project"}, "  ", TypeFile, "")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Equal(t, before, snapshotBytes(t, fs))
}

func TestCreateRootAndQuickCreate(t *testing.T) {
	fs := sampleFS()

	next, name, err := CreateRoot(fs, "Docs")
	require.NoError(t, err)
	assert.Equal(t, "Docs1", name)
	require.Len(t, next.Roots, 3)
	assert.True(t, next.Roots[2].IsRoot)
	assert.Equal(t, []string{"Project", "Docs", "Docs1"}, []string{next.Roots[0].Name, next.Roots[1].Name, next.Roots[2].Name})

	next, p, err := QuickCreate(fs, TypeFile)
	require.NoError(t, err)
	assert.Equal(t, "Project/newfile.txt", p.String())
	next, p, err = QuickCreate(next, TypeFile)
	require.NoError(t, err)
	assert.Equal(t, "Project/newfile1.txt", p.String())
	_, p, err = QuickCreate(next, TypeFolder)
	require.NoError(t, err)
	assert.Equal(t, "Project/newfolder", p.String())

	_, _, err = QuickCreate(&FileSystem{}, TypeFile)
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestRenameNode(t *testing.T) {
	freezeClock(t)
	fs := sampleFS()
	fs, _, _ = CreateNode(fs, Path{"Project"}, "index.js", TypeFile, "")
	fs, _, _ = CreateNode(fs, Path{"Project"}, "index.js", TypeFile, "")
	before := snapshotBytes(t, fs)

	t.Run("同名重命名不修改时间戳", func(t *testing.T) {
		orig, _ := Resolve(fs, ParsePath("Project/index.js"))
		next, err := RenameNode(fs, ParsePath("Project/index.js"), "index.js")
		require.NoError(t, err)
		n, _ := Resolve(next, ParsePath("Project/index.js"))
		assert.Equal(t, orig.UpdatedAt, n.UpdatedAt)
	})

	t.Run("重名冲突", func(t *testing.T) {
		_, err := RenameNode(fs, ParsePath("Project/index.js"), "index1.js")
		assert.ErrorIs(t, err, ErrNameCollision)
		assert.Equal(t, before, snapshotBytes(t, fs))
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := RenameNode(fs, ParsePath("Project/missing.js"), "x.js")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("重命名后重新推断语言", func(t *testing.T) {
		orig, _ := Resolve(fs, ParsePath("Project/index.js"))
		next, err := RenameNode(fs, ParsePath("Project/index.js"), "main.py")
		require.NoError(t, err)
		n, err := Resolve(next, ParsePath("Project/main.py"))
		require.NoError(t, err)
		assert.Equal(t, "main.py", n.Name)
		assert.Equal(t, "python", n.Language)
		assert.True(t, n.UpdatedAt.After(orig.UpdatedAt))
		_, err = Resolve(next, ParsePath("Project/index.js"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, before, snapshotBytes(t, fs))
	})

	t.Run("重命名根目录保持顺序", func(t *testing.T) {
		next, err := RenameNode(fs, Path{"Project"}, "App")
		require.NoError(t, err)
		assert.Equal(t, "App", next.Roots[0].Name)
		_, err = RenameNode(fs, Path{"Project"}, "Docs")
		assert.ErrorIs(t, err, ErrNameCollision)
	})
}

func TestDeleteNode(t *testing.T) {
	fs := sampleFS()
	before := snapshotBytes(t, fs)

	next, err := DeleteNode(fs, Path{"Project", "src"})
	require.NoError(t, err)
	_, err = Resolve(next, Path{"Project", "src"})
	assert.ErrorIs(t, err, ErrNotFound)

	next, err = DeleteNode(next, Path{"Docs"})
	require.NoError(t, err)
	require.Len(t, next.Roots, 1)

	_, err = DeleteNode(fs, Path{"Project", "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, snapshotBytes(t, fs))
}

func TestUpdateContent(t *testing.T) {
	fs := sampleFS()
	next, err := UpdateContent(fs, ParsePath("Project/README.md"), "# new")
	require.NoError(t, err)
	n, _ := Resolve(next, ParsePath("Project/README.md"))
	assert.Equal(t, "# new", n.Content)
	old, _ := Resolve(fs, ParsePath("Project/README.md"))
	assert.Equal(t, "# readme", old.Content)

	_, err = UpdateContent(fs, Path{"Project", "src"}, "x")
	assert.ErrorIs(t, err, ErrIsFolder)

	same, err := UpdateContent(fs, ParsePath("Project/README.md"), "# readme")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(fs, same))
}
