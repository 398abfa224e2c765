package project

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var ignoreTimes = cmpopts.IgnoreFields(Node{}, "CreatedAt", "UpdatedAt")

// freezeClock 固定 now()，每次调用前进一秒
func freezeClock(t *testing.T) *time.Time {
	t.Helper()
	cur := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
	t.Cleanup(func() { now = orig })
	return &cur
}

// sampleFS Project/{src/, README.md}, Docs/{guide.md, src/}
func sampleFS() *FileSystem {
	project := NewFolder("Project")
	project.AddChild(NewFolder("src"))
	project.AddChild(NewFile("README.md", "# readme"))

	docs := NewFolder("Docs")
	docs.AddChild(NewFile("guide.md", "guide"))
	docs.AddChild(NewFolder("src"))

	return NewFileSystem(project, docs)
}

func snapshotBytes(t *testing.T, fs *FileSystem) []byte {
	t.Helper()
	data, err := json.Marshal(fs)
	require.NoError(t, err)
	return data
}
