// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the stream lacks the fLaC signature or a valid STREAMINFO block
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedBitDepth indicates a sample size outside 4..32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrChannelMismatch indicates a frame whose subframes disagree with STREAMINFO
	ErrChannelMismatch = errors.New("FLAC frame channel layout mismatch")
)
