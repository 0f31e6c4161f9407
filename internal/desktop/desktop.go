// Package desktop injects pointer input into the host session and asks the
// user for confirmation.
package desktop

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when an operation has no implementation for the
// current operating system.
var ErrUnsupported = errors.New("desktop: unsupported platform")

// Injector moves and clicks the system pointer.
type Injector interface {
	MoveTo(x, y int) error
	Click() error
}

// Closer asks the focused window to close.
type Closer interface {
	RequestClose() error
}

// Prompt asks a yes/no question. It blocks until answered or ctx is done.
type Prompt interface {
	AskYesNo(ctx context.Context, message string) (bool, error)
}
