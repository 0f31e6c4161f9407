package app

import (
	"context"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/desktop"
)

// Answer is the outcome of a confirmation prompt.
type Answer struct {
	Confirmed bool
	Err       error
}

// Task is a running confirmation prompt.
type Task struct {
	result chan Answer
	done   chan struct{}
	cancel context.CancelFunc
}

// Result delivers the answer once. It is buffered so the prompt goroutine never
// blocks on a reader.
func (t *Task) Result() <-chan Answer {
	return t.result
}

// Done is closed when the prompt goroutine has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel dismisses the prompt.
func (t *Task) Cancel() {
	t.cancel()
}

// Confirmer runs at most one prompt at a time off the frame loop.
type Confirmer struct {
	prompt  desktop.Prompt
	message string
	timeout time.Duration

	mu    sync.Mutex
	shown bool
}

// NewConfirmer creates a Confirmer asking message through prompt. A
// non-positive timeout leaves the prompt open until it is answered or cancelled.
func NewConfirmer(prompt desktop.Prompt, message string, timeout time.Duration) *Confirmer {
	return &Confirmer{
		prompt:  prompt,
		message: message,
		timeout: timeout,
	}
}

// Start shows the prompt in a new goroutine. It returns nil while a previous
// prompt is still outstanding.
func (c *Confirmer) Start() *Task {
	c.mu.Lock()
	if c.shown {
		c.mu.Unlock()
		return nil
	}
	c.shown = true
	c.mu.Unlock()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	t := &Task{
		result: make(chan Answer, 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(t.done)
		defer cancel()

		ok, err := c.prompt.AskYesNo(ctx, c.message)
		t.result <- Answer{Confirmed: ok, Err: err}

		c.mu.Lock()
		c.shown = false
		c.mu.Unlock()
	}()

	return t
}

// Outstanding reports whether a prompt is currently shown.
func (c *Confirmer) Outstanding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}
