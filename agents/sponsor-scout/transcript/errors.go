package transcript

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure kinds for transcript acquisition. Blocked and transport errors are
// retryable within the fallback chain; TranscriptsDisabled and
// NoTranscriptFound stop the chain immediately.
var (
	ErrInvalidURL          = errors.New("could not extract a video id from the URL")
	ErrBlocked             = errors.New("the transcript source is blocking requests from this network origin")
	ErrTranscriptsDisabled = errors.New("captions are disabled for this video")
	ErrNoTranscriptFound   = errors.New("no fetchable transcript track exists for this video")
	ErrTimeout             = errors.New("transcript request timed out")
	ErrAllMethodsFailed    = errors.New("all transcript acquisition strategies failed")
)

// errNoPreferredTrack is internal to the chain: tracks exist, just none in a
// preferred language. The translation strategy recovers from this, so it must
// not be treated as terminal.
var errNoPreferredTrack = errors.New("no caption track in a preferred language")

func isTerminal(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) || errors.Is(err, ErrNoTranscriptFound)
}

// wrapTransport maps deadline and socket timeouts onto ErrTimeout so callers
// can classify them without digging through net internals.
func wrapTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
