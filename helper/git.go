package helper

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
)

// CloneProject 浅克隆仓库到临时目录并返回该目录，调用方负责删除
func CloneProject(gitURL string, progress io.Writer) (string, error) {
	tempDir, err := os.MkdirTemp("", "speak-clone-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:      gitURL,
		Depth:    1,
		Progress: progress,
	})
	if err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("clone %s: %w", gitURL, err)
	}
	return tempDir, nil
}

// OpenRepository 打开 path 所在的仓库（向上查找 .git），返回仓库与工作区根目录
func OpenRepository(path string) (*git.Repository, string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", fmt.Errorf("worktree: %w", err)
	}
	return repo, wt.Filesystem.Root(), nil
}
