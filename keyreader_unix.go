//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package readline

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"
)

// unixKeyReader is the POSIX KeyReader backend, per SPEC_FULL.md §4.2a.
// Grounded on the teacher's term_linuxdarwin.go (enableRawMode/
// DisableRawMode's termios flag choices, startInputReader's reader
// goroutine + channel shape, setupSignalHandler's signal.Notify use), with
// raw-mode acquisition itself delegated to golang.org/x/term rather than
// reimplementing the termios flag bits directly, since x/term is already
// part of the teacher's own dependency stack.
//
// Where the teacher mixes TTY raw-mode with its own editor/canvas state
// (winsize, e.rawmode, e.inputChan on the *Editor), this backend owns raw
// mode and the byte channel for its own fd only, scoped to one KeyReader
// instance rather than shared editor state.
type unixKeyReader struct {
	*sequenceKeyReader
	fd          int
	orig        *term.State
	bytes       chan byte
	sigCh       chan os.Signal
	interMu     sync.Mutex
	interrupted bool
	closeOnce   sync.Once
}

func newPlatformKeyReader(in *os.File) (KeyReader, error) {
	fd := int(in.Fd())

	orig, err := term.MakeRaw(fd)
	if err != nil {
		return nil, ErrReadKey
	}

	r := &unixKeyReader{
		fd:    fd,
		orig:  orig,
		bytes: make(chan byte, 256),
		sigCh: make(chan os.Signal, 1),
	}
	r.sequenceKeyReader = newSequenceKeyReader(r)

	signal.Notify(r.sigCh, syscall.SIGINT)
	go r.watchSignals()
	go r.readLoop(in)

	return r, nil
}

func (r *unixKeyReader) watchSignals() {
	for range r.sigCh {
		r.interMu.Lock()
		r.interrupted = true
		r.interMu.Unlock()
	}
}

func (r *unixKeyReader) readLoop(in *os.File) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			close(r.bytes)
			return
		}
		r.bytes <- buf[0]
	}
}

func (r *unixKeyReader) readByte() (byte, error) {
	r.interMu.Lock()
	interrupted := r.interrupted
	r.interrupted = false
	r.interMu.Unlock()
	if interrupted {
		return 0, ErrInterrupt
	}
	b, ok := <-r.bytes
	if !ok {
		return 0, ErrReadKey
	}
	return b, nil
}

func (r *unixKeyReader) tryReadByte() (byte, bool, error) {
	select {
	case b, ok := <-r.bytes:
		if !ok {
			return 0, false, ErrReadKey
		}
		return b, true, nil
	default:
		return 0, false, nil
	}
}

// restoreTermios puts the terminal back the way newPlatformKeyReader found
// it; Close runs it once. Mirrors the teacher's DisableRawMode but scoped
// to this reader's own saved state instead of a package-global.
func (r *unixKeyReader) restoreTermios() {
	term.Restore(r.fd, r.orig)
}

// Close restores the original termios state once, whether called from a
// deferred shutdown or by Editor.Close unwinding after a recovered panic.
func (r *unixKeyReader) Close() error {
	signal.Stop(r.sigCh)
	r.closeOnce.Do(r.restoreTermios)
	return nil
}
