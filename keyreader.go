package readline

import (
	"os"

	"github.com/mattn/go-isatty"
)

// KeyReader is the boundary between raw bytes and semantic keys, per
// spec.md §4.2: ReadOne blocks for exactly one key; ReadBatch blocks for
// at least one key, then drains whatever else is immediately available.
// Flush discards any buffered-but-undelivered keys.
type KeyReader interface {
	ReadOne() (Key, error)
	ReadBatch() ([]Key, error)
	Flush()
	// Close releases whatever raw-mode/console state newPlatformKeyReader
	// acquired, restoring the terminal to how it found it. Idempotent.
	Close() error
}

// byteSource is the minimal platform-supplied byte stream a KeyReader
// backend decodes ANSI sequences from. Acquiring/releasing raw mode and
// actually reading the descriptor are out of scope for this file (spec.md
// §1 "out of scope / external collaborators") and live in the platform
// backends (keyreader_unix.go, keyreader_windows.go).
type byteSource interface {
	// readByte blocks for exactly one byte, or returns an error (including
	// ErrInterrupt when the shared interrupt flag has been set).
	readByte() (byte, error)
	// tryReadByte polls for a byte already sitting in the OS input buffer
	// without blocking; ok is false when nothing is immediately available.
	// Used only to decide whether ReadBatch's drain continues.
	tryReadByte() (b byte, ok bool, err error)
}

// decodeSequence implements spec.md §4.2's byte-accumulation algorithm:
// a bare byte is emitted as-is; an ESC may start a 2, 3, or 4-byte
// sequence, committing early the moment the next byte isn't a
// continuation byte, and emitting whatever prefix was read if the stream
// ends mid-sequence.
//
// Grounded on readkey.py's _sequence_from_input_data, generalized from
// its incremental byte-buffer loop to a direct recursive-descent read
// since decodeSequence owns blocking reads one byte at a time instead of
// re-scanning an accumulating buffer.
func decodeSequence(src byteSource) (Key, error) {
	b, err := src.readByte()
	if err != nil {
		return Key{}, err
	}
	return decodeFromFirstByte(b, src)
}

// decodeFromFirstByte continues decodeSequence's algorithm given a first
// byte already in hand, so ReadBatch's non-blocking drain (which peeks the
// first byte separately) can share the rest of the decode logic.
func decodeFromFirstByte(b byte, src byteSource) (Key, error) {
	if b != byteEsc {
		return classifyByte(b), nil
	}

	second, err := src.readByte()
	if err != nil {
		// ESC alone, stream ended: emit what we have.
		return Key{Kind: KeyEsc}, nil
	}
	if second != '[' && second != 'O' {
		// ALT_<x> or CTRL_ALT_<x>: ESC followed by a single byte.
		return decodeAltCombo(second), nil
	}

	third, err := src.readByte()
	if err != nil {
		return Key{Kind: KeyEsc}, nil
	}
	if third < '1' || third > '6' {
		return decodeThreeByteSequence(third), nil
	}

	fourth, err := src.readByte()
	if err != nil {
		return Key{Kind: KeyEsc}, nil
	}
	return decodeFourByteSequence(third, fourth), nil
}

// decodeAltCombo handles ESC+byte: a letter is alt-<letter>, a control
// byte 0x01..0x1A is ctrl-alt-<letter>.
func decodeAltCombo(b byte) Key {
	if b >= 0x01 && b <= 0x1A {
		return Key{Kind: KeyCtrlAlt, Rune: rune('a' + b - 1)}
	}
	if b >= 'a' && b <= 'z' {
		return Key{Kind: KeyAlt, Rune: rune(b)}
	}
	if b >= 'A' && b <= 'Z' {
		return Key{Kind: KeyAlt, Rune: rune(b - 'A' + 'a')}
	}
	return Key{Kind: KeyEsc}
}

// decodeThreeByteSequence handles ESC [ x / ESC O x: arrows and HOME/END.
func decodeThreeByteSequence(b byte) Key {
	switch b {
	case 'A':
		return Key{Kind: KeyUp}
	case 'B':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight}
	case 'D':
		return Key{Kind: KeyLeft}
	case 'H':
		return Key{Kind: KeyHome}
	case 'F':
		return Key{Kind: KeyEnd}
	default:
		return Key{Kind: KeyEsc}
	}
}

// decodeFourByteSequence handles ESC [ n ~ / ESC [ n ^: INSERT, DELETE,
// PAGE_UP, PAGE_DOWN, and CTRL_ALT_DELETE.
func decodeFourByteSequence(digit, terminator byte) Key {
	if terminator == '^' && digit == '3' {
		return Key{Kind: KeyCtrlAltDelete}
	}
	if terminator != '~' {
		return Key{Kind: KeyEsc}
	}
	switch digit {
	case '2':
		return Key{Kind: KeyInsert}
	case '3':
		return Key{Kind: KeyDelete}
	case '5':
		return Key{Kind: KeyPageUp}
	case '6':
		return Key{Kind: KeyPageDown}
	default:
		return Key{Kind: KeyEsc}
	}
}

// sequenceKeyReader is the shared ReadOne/ReadBatch/Flush bookkeeping any
// byteSource-backed KeyReader needs: a pending-keys cache that ReadOne
// serves before decoding and Flush discards, plus the decode loop above.
// ReadBatch hands every key it drains to its caller and does not add to
// the cache. Both the POSIX and the Windows backend embed this, each
// supplying its own byte stream.
type sequenceKeyReader struct {
	src     byteSource
	pending []Key
}

func newSequenceKeyReader(src byteSource) *sequenceKeyReader {
	return &sequenceKeyReader{src: src}
}

func (r *sequenceKeyReader) ReadOne() (Key, error) {
	if len(r.pending) > 0 {
		k := r.pending[0]
		r.pending = r.pending[1:]
		return k, nil
	}
	return decodeSequence(r.src)
}

func (r *sequenceKeyReader) ReadBatch() ([]Key, error) {
	k, err := r.ReadOne()
	if err != nil {
		return nil, err
	}
	batch := []Key{k}
	for {
		more, ok := r.tryReadAvailable()
		if !ok {
			break
		}
		batch = append(batch, more)
	}
	return batch, nil
}

// tryReadAvailable drains one more key only if a byte is already sitting
// in the OS input buffer; once an escape sequence starts, its remaining
// bytes are read with blocking calls since a terminal delivers them as one
// atomic burst.
func (r *sequenceKeyReader) tryReadAvailable() (Key, bool) {
	b, ok, err := r.src.tryReadByte()
	if !ok || err != nil {
		return Key{}, false
	}
	k, err := decodeFromFirstByte(b, r.src)
	if err != nil {
		return Key{}, false
	}
	return k, true
}

func (r *sequenceKeyReader) Flush() {
	r.pending = nil
}

// NewKeyReader returns the platform raw-mode KeyReader for in, failing
// fast with ErrPlatformNotSupported when in is not a terminal (spec.md
// §4.2 errors: "failure to acquire TTY ... -> fatal"). Grounded on
// hasyimibhar-go-linenoise's isatty.IsTerminal guard and the teacher's
// own isatty(fd) checks before touching termios.
func NewKeyReader(in *os.File) (KeyReader, error) {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return nil, ErrPlatformNotSupported
	}
	return newPlatformKeyReader(in)
}

// asyncReadResult is one completed ReadOne/ReadBatch delivered back to the
// event loop over a channel.
type asyncReadResult struct {
	keys []Key
	err  error
}

// asyncKeyReader is the cooperative-mode KeyReader (spec.md §5): blocking
// reads are offloaded to a small fixed worker pool instead of stalling the
// caller's goroutine. Grounded on async_readline.py's use of
// `loop.run_in_executor` against a `ThreadPoolExecutor(max_workers=3)`.
type asyncKeyReader struct {
	inner   KeyReader
	jobs    chan struct{}
	results chan asyncReadResult
}

// NewAsyncKeyReader wraps inner with workers goroutines (default 3, per
// spec.md §5 and the source's ThreadPoolExecutor default) that call
// inner.ReadOne on its behalf so the caller's goroutine never blocks in a
// syscall.
func NewAsyncKeyReader(inner KeyReader, workers int) KeyReader {
	if workers <= 0 {
		workers = 3
	}
	r := &asyncKeyReader{
		inner:   inner,
		jobs:    make(chan struct{}),
		results: make(chan asyncReadResult),
	}
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

func (r *asyncKeyReader) worker() {
	for range r.jobs {
		k, err := r.inner.ReadOne()
		r.results <- asyncReadResult{keys: []Key{k}, err: err}
	}
}

func (r *asyncKeyReader) ReadOne() (Key, error) {
	r.jobs <- struct{}{}
	res := <-r.results
	if res.err != nil {
		return Key{}, res.err
	}
	return res.keys[0], nil
}

// ReadBatch returns exactly one key; it does not drain further input.
func (r *asyncKeyReader) ReadBatch() ([]Key, error) {
	k, err := r.ReadOne()
	if err != nil {
		return nil, err
	}
	return []Key{k}, nil
}

func (r *asyncKeyReader) Flush() {
	r.inner.Flush()
}

// Close delegates to the wrapped reader. It does not stop the worker
// goroutines: each keeps waiting for the next ReadOne request.
func (r *asyncKeyReader) Close() error {
	return r.inner.Close()
}
