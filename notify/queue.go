// Package notify 依次展示语音指令的反馈，同一时间只显示一条
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/share"
	"github.com/sjzsdu/speak/voice"
	"go.uber.org/zap"
)

var icons = map[voice.Severity]string{
	voice.SeveritySuccess: "✓",
	voice.SeverityError:   "✕",
	voice.SeverityWarning: "⚠",
	voice.SeverityInfo:    "ℹ",
}

// Icon 级别对应的图标
func Icon(s voice.Severity) string {
	if icon, ok := icons[s]; ok {
		return icon
	}
	return icons[voice.SeverityInfo]
}

// Item 队列中的一条通知
type Item struct {
	Message  string         `json:"message"`
	Severity voice.Severity `json:"severity"`
	At       time.Time      `json:"at"`
}

// String 带图标的文本
func (i Item) String() string {
	return Icon(i.Severity) + " " + i.Message
}

// Sink 通知的展示端
type Sink interface {
	Show(item Item)
	Hide(item Item)
}

// WriterSink 逐行写出通知
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink 写到 w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Show(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, item.String())
}

func (s *WriterSink) Hide(Item) {}

// LogSink 把通知写进日志
type LogSink struct{}

func (LogSink) Show(item Item) {
	logger.Info("notification", zap.String("severity", string(item.Severity)), zap.String("message", item.Message))
}

func (LogSink) Hide(Item) {}

// Option 队列选项
type Option func(*Queue)

// WithTiming 修改展示时长与间隔
func WithTiming(display, gap time.Duration) Option {
	return func(q *Queue) {
		q.display, q.gap = display, gap
	}
}

// WithHistory 保留最近 n 条通知
func WithHistory(n int) Option {
	return func(q *Queue) {
		q.historySize = n
	}
}

// Queue 先进先出的通知队列，实现 voice.Notifier
type Queue struct {
	sink    Sink
	display time.Duration
	gap     time.Duration

	mu          sync.Mutex
	pending     []Item
	history     []Item
	historySize int
	closed      bool

	signal chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewQueue 创建队列并启动展示协程
func NewQueue(sink Sink, opts ...Option) *Queue {
	q := &Queue{
		sink:        sink,
		display:     share.NOTIFY_DISPLAY,
		gap:         share.NOTIFY_GAP,
		historySize: 50,
		signal:      make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Notify 入队，不阻塞调用方。关闭后的通知被丢弃。
func (q *Queue) Notify(message string, severity voice.Severity) {
	item := Item{Message: message, Severity: severity, At: time.Now()}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, item)
	q.history = append(q.history, item)
	if len(q.history) > q.historySize {
		q.history = q.history[len(q.history)-q.historySize:]
	}
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Pending 尚未展示的数量
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// History 最近的通知，按时间先后
func (q *Queue) History() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, len(q.history))
	copy(out, q.history)
	return out
}

// Close 停止展示协程，剩余通知立即依次输出
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
	})
	q.wg.Wait()
}

func (q *Queue) pop() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return Item{}, false
	}
	item := q.pending[0]
	q.pending = q.pending[1:]
	return item, true
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		item, ok := q.pop()
		if !ok {
			select {
			case <-q.signal:
				continue
			case <-q.done:
				q.flush()
				return
			}
		}

		q.sink.Show(item)
		stopped := !q.wait(q.display)
		q.sink.Hide(item)
		if stopped || !q.wait(q.gap) {
			q.flush()
			return
		}
	}
}

func (q *Queue) wait(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-q.done:
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-q.done:
		return false
	}
}

func (q *Queue) flush() {
	for {
		item, ok := q.pop()
		if !ok {
			return
		}
		q.sink.Show(item)
		q.sink.Hide(item)
	}
}

var _ voice.Notifier = (*Queue)(nil)
