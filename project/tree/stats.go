package tree

import (
	"fmt"

	"github.com/sjzsdu/speak/project"
)

// Statistics 树的统计信息
type Statistics struct {
	TotalNodes     int
	DirectoryCount int
	FileCount      int
	TotalSize      int64 // 内容总字节数
	MaxDepth       int
	Languages      map[string]int
}

// Stats 统计整个快照
func Stats(fs *project.FileSystem) Statistics {
	stats := Statistics{Languages: make(map[string]int)}
	_ = project.Walk(fs, func(_ project.Path, n *project.Node, depth int) error {
		stats.TotalNodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if n.IsFolder() {
			stats.DirectoryCount++
			return nil
		}
		stats.FileCount++
		stats.TotalSize += int64(len(n.Content))
		stats.Languages[n.Language]++
		return nil
	})
	return stats
}

func (s Statistics) String() string {
	return fmt.Sprintf("%d folders, %d files, %s, max depth %d",
		s.DirectoryCount, s.FileCount, humanSize(s.TotalSize), s.MaxDepth)
}
