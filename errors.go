package readline

import "errors"

// Sentinel errors surfaced to callers, per spec.md §6/§7. These replace the
// source's raised exceptions (NessaidReadlineEOF, NessaidReadlineKeyboadInterrupt,
// readkey.PlatformNotSupported, readkey.ReadKeyError) with the idiomatic Go
// equivalent: returned errors checked with errors.Is.
var (
	// ErrInterrupt is returned when Ctrl-C (or an out-of-band interrupt
	// request) ends an in-progress Readline/Input call.
	ErrInterrupt = errors.New("readline: interrupted")

	// ErrEOF is returned when Ctrl-D ends an in-progress Readline/Input
	// call, on an empty or non-empty line.
	ErrEOF = errors.New("readline: eof")

	// ErrPlatformNotSupported is returned when no raw-mode KeyReader
	// backend exists for the current OS.
	ErrPlatformNotSupported = errors.New("readline: platform not supported")

	// ErrReadKey is returned when the underlying key source fails
	// (TTY acquisition failure, I/O error on the descriptor).
	ErrReadKey = errors.New("readline: read key error")
)
