package readline

import (
	"io"
	"strings"
)

// Terminal is the narrow output sink from spec.md §4.3: a few write
// primitives, no cursor-position queries, no SGR. All cursor motion is
// achieved with backspace and spaces.
type Terminal interface {
	Write(s string)
	Backspace(n int)
	Spaces(n int)
	Bell()
	Flush() error
	// SetMask controls whether Write prints '*' per code point of input
	// text instead of the text itself. Prompts and other editor output
	// (line breaks, completion listings, the reverse-search line) bypass
	// masking by writing through WriteUnmasked.
	SetMask(enabled bool)
	WriteUnmasked(s string)
}

// streamTerminal is the default Terminal, writing to an io.Writer through a
// small retry-on-partial-write loop. The retry loop is the one piece of the
// teacher's terminal.go (writeAllToStdout) that still applies once the
// color/cursor-position/multiplexer-probing code around it is gone: a
// plain-text output contract (spec.md §6) still has to survive a short
// write on a pipe or a slow pty.
type streamTerminal struct {
	out  io.Writer
	mask bool
}

// NewTerminal wraps out as a Terminal sink.
func NewTerminal(out io.Writer) Terminal {
	return &streamTerminal{out: out}
}

func (t *streamTerminal) SetMask(enabled bool) { t.mask = enabled }

func (t *streamTerminal) Write(s string) {
	if t.mask {
		t.writeAll(strings.Repeat("*", len([]rune(s))))
		return
	}
	t.writeAll(s)
}

func (t *streamTerminal) WriteUnmasked(s string) {
	t.writeAll(s)
}

func (t *streamTerminal) Backspace(n int) {
	if n <= 0 {
		return
	}
	t.writeAll(strings.Repeat("\b", n))
}

func (t *streamTerminal) Spaces(n int) {
	if n <= 0 {
		return
	}
	t.writeAll(strings.Repeat(" ", n))
}

func (t *streamTerminal) Bell() {
	t.writeAll("\a")
}

func (t *streamTerminal) Flush() error {
	if f, ok := t.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// writeAll retries on short writes, grounded on the teacher's
// writeAllToStdout in terminal.go.
func (t *streamTerminal) writeAll(s string) {
	data := []byte(s)
	for len(data) > 0 {
		n, err := t.out.Write(data)
		if err != nil || n <= 0 {
			return
		}
		data = data[n:]
	}
}

// writePrompt prints prompt per spec.md §6 ("Prompts are printed verbatim
// except \r->\n and \n->\r\n") and returns the trailing width: the length
// of the prompt text after its last newline, spec.md §3's "prompt trailing
// width", used as the origin the caret is counted from.
func writePrompt(t Terminal, prompt string) int {
	if prompt == "" {
		return 0
	}
	prompt = strings.ReplaceAll(prompt, "\r", "\n")
	translated := strings.ReplaceAll(prompt, "\n", "\r\n")
	t.WriteUnmasked(translated)

	trailing := prompt
	if idx := strings.LastIndex(prompt, "\n"); idx >= 0 {
		trailing = prompt[idx+1:]
	}
	return len([]rune(trailing))
}
