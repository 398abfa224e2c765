package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/sjzsdu/speak/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type event struct {
	kind string
	item Item
	at   time.Time
}

type recordSink struct {
	mu     sync.Mutex
	events []event
}

func (r *recordSink) Show(item Item) { r.add("show", item) }
func (r *recordSink) Hide(item Item) { r.add("hide", item) }

func (r *recordSink) add(kind string, item Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{kind: kind, item: item, at: time.Now()})
}

func (r *recordSink) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func TestQueueShowsOneAtATimeInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordSink{}
	q := NewQueue(sink, WithTiming(20*time.Millisecond, 5*time.Millisecond))
	q.Notify("first", voice.SeveritySuccess)
	q.Notify("second", voice.SeverityError)
	q.Notify("third", voice.SeverityInfo)

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 6 }, 2*time.Second, 5*time.Millisecond)
	q.Close()

	events := sink.snapshot()
	var order []string
	for i, e := range events {
		if i%2 == 0 {
			assert.Equal(t, "show", e.kind)
			order = append(order, e.item.Message)
		} else {
			assert.Equal(t, "hide", e.kind)
			assert.Equal(t, events[i-1].item, e.item)
			assert.GreaterOrEqual(t, e.at.Sub(events[i-1].at), 20*time.Millisecond)
		}
	}
	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.GreaterOrEqual(t, events[2].at.Sub(events[1].at), 5*time.Millisecond)
}

func TestQueueCloseFlushesPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordSink{}
	q := NewQueue(sink, WithTiming(time.Hour, time.Hour))
	q.Notify("a", voice.SeverityInfo)
	q.Notify("b", voice.SeverityInfo)
	q.Notify("c", voice.SeverityInfo)

	require.Eventually(t, func() bool { return len(sink.snapshot()) >= 1 }, time.Second, time.Millisecond)
	q.Close()
	q.Close()

	var shown []string
	for _, e := range sink.snapshot() {
		if e.kind == "show" {
			shown = append(shown, e.item.Message)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, shown)
	assert.Zero(t, q.Pending())

	q.Notify("late", voice.SeverityInfo)
	assert.Zero(t, q.Pending())
}

func TestQueueHistory(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue(&recordSink{}, WithTiming(0, 0), WithHistory(2))
	defer q.Close()
	q.Notify("1", voice.SeverityInfo)
	q.Notify("2", voice.SeverityInfo)
	q.Notify("3", voice.SeverityWarning)

	h := q.History()
	require.Len(t, h, 2)
	assert.Equal(t, "2", h[0].Message)
	assert.Equal(t, "3", h[1].Message)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)
	s.Show(Item{Message: "Saved a.js", Severity: voice.SeveritySuccess})
	s.Show(Item{Message: "oops", Severity: voice.SeverityError})
	s.Show(Item{Message: "hmm", Severity: voice.SeverityWarning})
	s.Show(Item{Message: "fyi", Severity: "other"})
	assert.Equal(t, "✓ Saved a.js\n✕ oops\n⚠ hmm\nℹ fyi\n", buf.String())
}
