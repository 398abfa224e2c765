// Package listen 持续监听：跟踪转写文件，每追加一行即一条最终识别结果
package listen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sjzsdu/speak/helper/logger"
	"go.uber.org/zap"
)

var ErrAlreadyListening = errors.New("already listening")

// Handler 处理一条识别结果
type Handler func(ctx context.Context, utterance string)

// Option 监听选项
type Option func(*FileListener)

// FromStart 从文件开头读取，默认只读取启动后追加的内容
func FromStart() Option {
	return func(l *FileListener) { l.fromStart = true }
}

// FileListener 跟踪转写文件的追加内容
type FileListener struct {
	path      string
	handler   Handler
	fromStart bool

	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	running   bool
	offset    int64
	partial   []byte
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
	lastError error
}

// NewFileListener 创建监听器，Start 之前不会打开文件
func NewFileListener(path string, handler Handler, opts ...Option) *FileListener {
	l := &FileListener{path: path, handler: handler}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start 开始监听。文件无法打开时返回错误，监听保持关闭
func (l *FileListener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrAlreadyListening
	}

	abs, err := filepath.Abs(l.path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("open transcript: %s is a directory", abs)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// 监听所在目录，文件被替换或重建后仍能收到事件
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch transcript: %w", err)
	}

	l.path = abs
	l.watcher = w
	l.offset = info.Size()
	if l.fromStart {
		l.offset = 0
	}
	l.partial = nil
	l.lastError = nil
	l.running = true
	l.stopOnce = sync.Once{}
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})

	logger.Info("listening", logger.Path(abs))
	go l.run(ctx, l.stopCh, l.doneCh)
	return nil
}

// Stop 停止监听，可以在 Handler 中调用，不等待退出
func (l *FileListener) Stop() {
	l.mu.Lock()
	stopCh := l.stopCh
	l.mu.Unlock()
	if stopCh == nil {
		return
	}
	l.stopOnce.Do(func() { close(stopCh) })
}

// Wait 等待监听结束，返回导致结束的错误
func (l *FileListener) Wait() error {
	l.mu.Lock()
	doneCh := l.doneCh
	l.mu.Unlock()
	if doneCh != nil {
		<-doneCh
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastError
}

// Listening 是否正在监听
func (l *FileListener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *FileListener) run(ctx context.Context, stopCh, doneCh chan struct{}) {
	var failure error
	defer func() {
		l.mu.Lock()
		l.running = false
		l.lastError = failure
		l.watcher.Close()
		l.mu.Unlock()
		close(doneCh)
		logger.Info("listening stopped", logger.Path(l.path))
	}()

	if l.fromStart {
		if failure = l.drain(ctx); failure != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Name != l.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if failure = l.drain(ctx); failure != nil {
				logger.Error("transcript unreadable", logger.Path(l.path), logger.Err(failure))
				return
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// drain 读取新增内容，完整的行交给 Handler，不完整的行留到下次
func (l *FileListener) drain(ctx context.Context) error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.offset {
		// 文件被截断，从头开始
		l.offset, l.partial = 0, nil
	}
	if _, err := f.Seek(l.offset, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	l.offset += int64(len(data))

	buf := append(l.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(buf[:i]))
		buf = buf[i+1:]
		if line == "" {
			continue
		}
		select {
		case <-l.stopCh:
			l.partial = nil
			return nil
		default:
		}
		logger.Debug("heard", logger.Utterance(line))
		l.handler(ctx, line)
	}
	l.partial = append([]byte(nil), buf...)
	return nil
}
