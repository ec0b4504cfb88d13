package cmd

import "fmt"

// ErrExitWith asks main to print Msg and exit with ExitCode.
type ErrExitWith struct {
	Err       error
	Msg       string
	ExitCode  int
	ShowUsage bool
}

func (e ErrExitWith) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%v: %v", e.Msg, e.Err)
}

func (e ErrExitWith) Unwrap() error { return e.Err }
