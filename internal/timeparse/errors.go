package timeparse

import (
	"errors"
	"fmt"
)

// ErrTimeParse is matched by every error returned when text cannot be
// resolved to a date and time.
var ErrTimeParse = errors.New("unable to parse the provided date and time")

// TimeParseError reports the input that could not be resolved.
type TimeParseError struct {
	Input string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("%v: %q", ErrTimeParse, e.Input)
}

// Is makes errors.Is(err, ErrTimeParse) succeed.
func (e *TimeParseError) Is(target error) bool {
	return target == ErrTimeParse
}
