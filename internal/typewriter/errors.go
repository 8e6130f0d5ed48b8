package typewriter

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetFault marks a failure raised by a Target while it was being mutated.
	ErrTargetFault = errors.New("typewriter: target fault")

	// ErrNilTarget is reported for a nil entry in the target set.
	ErrNilTarget = errors.New("typewriter: nil target")

	// ErrPending is returned by Completion.Result before the Completion settles.
	ErrPending = errors.New("typewriter: completion pending")
)

// TargetError wraps a failure of one target's timeline. Init is set when the
// failure happened before the timeline started revealing.
type TargetError struct {
	Index int
	Op    string
	Init  bool
	Err   error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %d: %s: %v", e.Index, e.Op, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

func (e *TargetError) Is(target error) bool { return target == ErrTargetFault }
