// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrUnknownFormat     = errors.New("unknown audio format")
	ErrFormatMismatch    = errors.New("declared format does not match content")
	ErrNoAudio           = errors.New("no audio frames decoded")
	ErrNilBuffer         = errors.New("nil buffer")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrNoChannels        = errors.New("channel count must be positive")
	ErrChannelLength     = errors.New("channels differ in length")
	ErrInvalidBound      = errors.New("window bound is not a finite number")
	ErrInvertedWindow    = errors.New("window end precedes start")
	ErrEmptySelection    = errors.New("window selects no frames")
	ErrSizeOverflow      = errors.New("encoded size overflows container limits")
)

// DecodeError reports input bytes that could not be turned into a Buffer.
// It is terminal for the request: retrying with the same bytes gives the same result.
type DecodeError struct {
	Format   string // format key that was attempted, empty when none matched
	MIMEType string // declared MIME type, as given by the caller
	Err      error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Format != "":
		return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
	case e.MIMEType != "":
		return fmt.Sprintf("decode %q: %v", e.MIMEType, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WindowError reports a trim window that cannot be applied.
type WindowError struct {
	Window Window
	Err    error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window [%g, %g): %v", e.Window.Start, e.Window.End, e.Err)
}

func (e *WindowError) Unwrap() error { return e.Err }

// EncodeError reports a buffer that cannot be serialized into a container.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encode: " + e.Err.Error() }

func (e *EncodeError) Unwrap() error { return e.Err }
