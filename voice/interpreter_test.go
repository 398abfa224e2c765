package voice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInterpreterDropsWhileConfirming(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture()
	f.shell.gate = make(chan struct{})
	it := NewInterpreter(f.caps())

	done := make(chan Effect)
	go func() {
		eff, _ := it.Handle(context.Background(), "delete file readme.md")
		done <- eff
	}()

	require.Eventually(t, it.Busy, time.Second, time.Millisecond)
	_, err := it.Handle(context.Background(), "create file dropped.js")
	assert.ErrorIs(t, err, ErrBusy)

	close(f.shell.gate)
	eff := <-done
	require.NoError(t, eff.Err)
	assert.False(t, it.Busy())

	assert.Nil(t, f.files.fs.Root("Project").Child("dropped.js"))
	assert.Equal(t, 1, f.notes.count())

	_, err = it.Handle(context.Background(), "create file kept.js")
	require.NoError(t, err)
	assert.NotNil(t, f.files.fs.Root("Project").Child("kept.js"))
}

func TestInterpreterDictation(t *testing.T) {
	f := newFixture()
	it := NewInterpreter(f.caps())
	ctx := context.Background()

	_, err := it.Handle(ctx, "typing on")
	require.NoError(t, err)
	assert.True(t, f.dictation.on)

	eff, err := it.Handle(ctx, "  Delete The Line ")
	require.NoError(t, err)
	assert.Equal(t, IntentDictate, eff.Command.Intent)
	assert.Equal(t, []string{"Delete The Line"}, f.editor.inserted)
	assert.Empty(t, f.editor.actions)

	eff, err = it.Handle(ctx, "stop typing")
	require.NoError(t, err)
	assert.Equal(t, IntentTypingOff, eff.Command.Intent)
	assert.False(t, f.dictation.on)

	eff, _ = it.Handle(ctx, "delete line")
	assert.Equal(t, IntentDeleteLine, eff.Command.Intent)
}

func TestInterpreterObserverAndContext(t *testing.T) {
	f := newFixture()
	var seen []string
	it := NewInterpreter(f.caps(), WithObserver(func(u string, eff Effect) {
		seen = append(seen, u+"="+eff.Outcome())
	}))

	_, err := it.Handle(context.Background(), "undo")
	require.NoError(t, err)
	_, err = it.Handle(context.Background(), "gibberish")
	require.NoError(t, err)
	assert.Equal(t, []string{"undo=ok", "gibberish=unknown"}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = it.Handle(ctx, "undo")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, seen, 2)
}
