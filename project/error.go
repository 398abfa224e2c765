package project

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNameCollision = errors.New("name already exists")
	ErrInvalidParent = errors.New("parent is not a folder")
	ErrInvalidName   = errors.New("invalid name")
	ErrRejected      = errors.New("paste rejected")
)

// PathError 记录失败的操作与路径
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(op string, p Path, err error) error {
	return &PathError{Op: op, Path: p.String(), Err: err}
}

// ErrIsFolder 需要文件却得到文件夹
var ErrIsFolder = errors.New("is a folder")
