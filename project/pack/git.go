package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sjzsdu/speak/helper"
	"github.com/sjzsdu/speak/project"
)

// ErrNothingToCommit 工作区没有变化
var ErrNothingToCommit = errors.New("nothing to commit")

// Author 提交作者
type Author struct {
	Name  string
	Email string
}

// CommitToGit 把快照写入 dir 并提交。dir 不在仓库中时初始化新仓库；
// 每个根目录先整体删除再写入，快照中已删除的文件也会从提交中消失
func CommitToGit(dir string, fs *project.FileSystem, message string, author Author) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	repo, root, err := openOrInit(dir)
	if err != nil {
		return "", err
	}

	for _, r := range fs.Roots {
		if err := os.RemoveAll(filepath.Join(dir, r.Name)); err != nil {
			return "", err
		}
		if err := WriteDir(dir, r); err != nil {
			return "", err
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", err
	}
	opts := &git.AddOptions{All: true}
	if rel != "." {
		opts = &git.AddOptions{Path: filepath.ToSlash(rel)}
	}
	if err := wt.AddWithOptions(opts); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	if author.Name == "" {
		author.Name = "speak"
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		All: true,
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return "", ErrNothingToCommit
	}
	if err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	return hash.String(), nil
}

func openOrInit(dir string) (*git.Repository, string, error) {
	repo, root, err := helper.OpenRepository(dir)
	if err == nil {
		return repo, root, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, "", fmt.Errorf("git open: %w", err)
	}
	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, "", fmt.Errorf("git init: %w", err)
	}
	return repo, dir, nil
}
