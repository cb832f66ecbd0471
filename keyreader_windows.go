//go:build windows

package readline

import (
	"os"
	"sync"
	"syscall"
	"unsafe"
)

// windowsKeyReader is the Windows console KeyReader backend, per
// SPEC_FULL.md §4.2a. Grounded on the teacher's term_windows.go
// (GetConsoleMode/SetConsoleMode toggling, waitForInput's
// WaitForSingleObject poll) and key_windows.go's extended-key byte
// tables, adapted to the sequenceKeyReader byteSource shape used by
// keyreader_unix.go so both backends feed the same decode algorithm.
type windowsKeyReader struct {
	*sequenceKeyReader
	inHandle  syscall.Handle
	outHandle syscall.Handle
	origIn    uint32
	origOut   uint32

	bytes     chan byte
	closeOnce sync.Once
}

var (
	kernel32                = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleMode      = kernel32.NewProc("GetConsoleMode")
	procSetConsoleMode      = kernel32.NewProc("SetConsoleMode")
	procWaitForSingleObject = kernel32.NewProc("WaitForSingleObject")
)

const (
	enableProcessedInput       = 0x0001
	enableLineInput            = 0x0002
	enableEchoInput            = 0x0004
	enableVirtualTerminalInput = 0x0200

	enableVirtualTerminalProcessing = 0x0004

	waitObject0 = 0
)

func newPlatformKeyReader(in *os.File) (KeyReader, error) {
	inHandle := syscall.Stdin
	outHandle := syscall.Stdout

	var origIn, origOut uint32
	if err := getConsoleMode(inHandle, &origIn); err != nil {
		return nil, ErrPlatformNotSupported
	}
	if err := getConsoleMode(outHandle, &origOut); err != nil {
		return nil, ErrPlatformNotSupported
	}

	newIn := origIn
	newIn &^= enableEchoInput | enableLineInput | enableProcessedInput
	newIn |= enableVirtualTerminalInput
	if err := setConsoleMode(inHandle, newIn); err != nil {
		return nil, ErrReadKey
	}

	newOut := origOut | enableVirtualTerminalProcessing
	setConsoleMode(outHandle, newOut)

	r := &windowsKeyReader{
		inHandle:  inHandle,
		outHandle: outHandle,
		origIn:    origIn,
		origOut:   origOut,
		bytes:     make(chan byte, 256),
	}
	r.sequenceKeyReader = newSequenceKeyReader(r)
	go r.readLoop(in)

	return r, nil
}

func (r *windowsKeyReader) readLoop(in *os.File) {
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

func (r *windowsKeyReader) readByte() (byte, error) {
	b, ok := <-r.bytes
	if !ok {
		return 0, ErrReadKey
	}
	return b, nil
}

func (r *windowsKeyReader) tryReadByte() (byte, bool, error) {
	if !waitForInput(r.inHandle, 0) {
		return 0, false, nil
	}
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

// restoreConsoleMode undoes newPlatformKeyReader's mode changes.
func (r *windowsKeyReader) restoreConsoleMode() {
	setConsoleMode(r.inHandle, r.origIn)
	setConsoleMode(r.outHandle, r.origOut)
}

// Close restores the original console modes once, whether called from a
// deferred shutdown or by Editor.Close unwinding after a recovered panic.
func (r *windowsKeyReader) Close() error {
	r.closeOnce.Do(r.restoreConsoleMode)
	return nil
}

func getConsoleMode(handle syscall.Handle, mode *uint32) error {
	r1, _, err := procGetConsoleMode.Call(uintptr(handle), uintptr(unsafe.Pointer(mode)))
	if r1 == 0 {
		return err
	}
	return nil
}

func setConsoleMode(handle syscall.Handle, mode uint32) error {
	r1, _, err := procSetConsoleMode.Call(uintptr(handle), uintptr(mode))
	if r1 == 0 {
		return err
	}
	return nil
}

func waitForInput(handle syscall.Handle, timeoutMs uint32) bool {
	r1, _, _ := procWaitForSingleObject.Call(uintptr(handle), uintptr(timeoutMs))
	return r1 == uintptr(waitObject0)
}
