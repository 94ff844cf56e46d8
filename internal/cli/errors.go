package cli

import "errors"

// ErrUsage marks failures the user can fix from the command line (bad flags,
// missing or invalid config). main reports these with a distinct exit code
// instead of a stack of wrapped causes.
var ErrUsage = errors.New("tsclientgen: invalid usage")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
