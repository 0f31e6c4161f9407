package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfirmer_OneOutstanding(t *testing.T) {
	prompt := newGatedPrompt()
	c := NewConfirmer(prompt, "Close?", time.Minute)

	task := c.Start()
	if task == nil {
		t.Fatal("Start() returned nil with no prompt shown")
	}
	if !c.Outstanding() {
		t.Error("Outstanding() = false while prompt is shown")
	}
	if again := c.Start(); again != nil {
		t.Error("Start() returned a second task while one is outstanding")
	}

	prompt.release <- true
	ans := <-task.Result()
	<-task.Done()

	if !ans.Confirmed || ans.Err != nil {
		t.Errorf("answer = %+v, want confirmed", ans)
	}
	if c.Outstanding() {
		t.Error("Outstanding() = true after the prompt finished")
	}

	next := c.Start()
	if next == nil {
		t.Fatal("Start() returned nil after the previous prompt finished")
	}
	prompt.release <- false
	if ans := <-next.Result(); ans.Confirmed {
		t.Error("declined prompt reported confirmed")
	}
}

func TestConfirmer_Cancel(t *testing.T) {
	c := NewConfirmer(newGatedPrompt(), "Close?", time.Minute)

	task := c.Start()
	task.Cancel()

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled prompt did not finish")
	}

	ans := <-task.Result()
	if !errors.Is(ans.Err, context.Canceled) {
		t.Errorf("answer error = %v, want context.Canceled", ans.Err)
	}
}

func TestConfirmer_NoTimeoutByDefault(t *testing.T) {
	prompt := newGatedPrompt()
	c := NewConfirmer(prompt, "Close?", DefaultConfig().ConfirmTimeout)

	task := c.Start()
	select {
	case <-task.Done():
		t.Fatal("prompt finished without an answer")
	case <-time.After(100 * time.Millisecond):
	}
	if !c.Outstanding() {
		t.Error("Outstanding() = false while waiting for the user")
	}

	prompt.release <- true
	if ans := <-task.Result(); !ans.Confirmed || ans.Err != nil {
		t.Errorf("answer = %+v, want confirmed", ans)
	}
}

func TestConfirmer_Timeout(t *testing.T) {
	c := NewConfirmer(newGatedPrompt(), "Close?", 20*time.Millisecond)

	task := c.Start()
	<-task.Done()

	if ans := <-task.Result(); !errors.Is(ans.Err, context.DeadlineExceeded) {
		t.Errorf("answer error = %v, want DeadlineExceeded", ans.Err)
	}
}
