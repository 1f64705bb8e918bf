package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from a reader that went away
// (EPIPE or a closed io.Pipe), as when output is piped into `head`.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// quiet maps broken-pipe errors to nil.
func quiet(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
