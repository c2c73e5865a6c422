package quiz

import (
	"errors"
	"fmt"
)

// ErrEmpty means no fragment of the payload decoded into a question.
var ErrEmpty = errors.New("no valid quiz data")

// ErrNotQuestion marks a decoded object that carries neither a question nor options.
var ErrNotQuestion = errors.New("object has no question or options")

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrFetchInProgress   = errors.New("a quiz is already being fetched")
	ErrIndexOutOfRange   = errors.New("question index out of range")
	ErrUnknownOption     = errors.New("option does not belong to the question")
)

// MalformedError reports one fragment that could not be turned into a question.
type MalformedError struct {
	Index   int
	Snippet string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed quiz fragment #%d (%q): %v", e.Index, e.Snippet, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// TransitionError is returned when an action is not allowed in the current state.
type TransitionError struct {
	From   State
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while quiz is %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
