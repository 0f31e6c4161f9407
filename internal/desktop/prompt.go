package desktop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// PromptTitle is the dialog title shown by CommandPrompt.
const PromptTitle = "Mudra"

// CommandPrompt asks a question through an external dialog program.
type CommandPrompt struct {
	// Program is the executable to run.
	Program string
	// Args builds the program arguments for a message.
	Args func(message string) []string
	// Answer interprets the program's stdout and exit error.
	Answer func(stdout []byte, runErr error) (bool, error)
}

// NewPrompt returns the dialog prompt for the running platform: zenity on
// Linux and BSD, osascript on macOS.
func NewPrompt() (*CommandPrompt, error) {
	return promptFor(runtime.GOOS)
}

func promptFor(goos string) (*CommandPrompt, error) {
	switch goos {
	case "darwin":
		return &CommandPrompt{
			Program: "osascript",
			Args:    osascriptArgs,
			Answer:  osascriptAnswer,
		}, nil
	case "linux", "freebsd", "openbsd":
		return &CommandPrompt{
			Program: "zenity",
			Args:    zenityArgs,
			Answer:  exitCodeAnswer,
		}, nil
	default:
		return nil, fmt.Errorf("%w: no dialog program for %s", ErrUnsupported, goos)
	}
}

// AskYesNo runs the dialog and waits for the answer. Cancelling ctx kills
// the dialog.
func (p *CommandPrompt) AskYesNo(ctx context.Context, message string) (bool, error) {
	cmd := exec.CommandContext(ctx, p.Program, p.Args(message)...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, fmt.Errorf("prompt cancelled: %w", ctxErr)
	}

	ok, err := p.Answer(stdout.Bytes(), err)
	if err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return false, fmt.Errorf("prompt failed: %w, stderr: %s", err, s)
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return ok, nil
}

func zenityArgs(message string) []string {
	return []string{"--question", "--title", PromptTitle, "--text", message}
}

func osascriptArgs(message string) []string {
	script := fmt.Sprintf(
		`display dialog %q with title %q buttons {"No", "Yes"} default button "Yes"`,
		message, PromptTitle)
	return []string{"-e", script}
}

// exitCodeAnswer maps exit status 0 to yes and 1 to no.
func exitCodeAnswer(_ []byte, runErr error) (bool, error) {
	if runErr == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, runErr
}

func osascriptAnswer(stdout []byte, runErr error) (bool, error) {
	if runErr != nil {
		return false, runErr
	}
	return strings.Contains(string(stdout), "button returned:Yes"), nil
}

// StaticPrompt answers every question with the same value.
type StaticPrompt bool

func (p StaticPrompt) AskYesNo(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(p), nil
}
