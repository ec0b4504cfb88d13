package main

import (
	"fmt"
	"os"

	"github.com/go-spatial/eomaps/cmd/eomaps-grid/cmd"
)

func runRoot() <-chan error {
	errch := make(chan error)
	go func(errch chan error) {
		err := cmd.Root.Execute()
		if err != nil {
			errch <- err
		}
		close(errch)
	}(errch)
	return errch
}

func main() {
	exitCode := 0
	select {
	case err := <-runRoot():
		if err == nil {
			break
		}
		switch e := err.(type) {
		case cmd.ErrExitWith:
			if e.ShowUsage {
				cmd.Root.Usage()
			}
			fmt.Fprintln(os.Stderr, e.Error())
			exitCode = e.ExitCode
		default:
			fmt.Fprintln(os.Stderr, "got the following error:", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
