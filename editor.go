package readline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Editor is the top-level key-dispatch state machine from spec.md §4.8: it
// owns bindings, history, and configuration for its whole lifetime, and
// creates ephemeral per-call state (buffer, caret, mode flags) for each
// Readline/Input call, discarding it on return.
//
// Grounded on readline.py's NessaidReadline class and async_readline.py's
// lookup-mode additions; the sync/async split in the source collapses
// here into one Editor driven by whichever KeyReader it is given
// (spec.md §9's "Editor parameterized by a reader trait").
type Editor struct {
	term   Terminal
	reader KeyReader
	stderr io.Writer

	bindings   *KeyBindings
	history    *History
	completion *completionState

	enableBell  bool
	bellSilence time.Duration
	lastBell    time.Time

	// Per-call ephemeral state, valid only between runInput's entry and
	// return (spec.md §3 "Lifecycle").
	buf          *EditBuffer
	prompt       string
	promptWidth  int
	maskInput    bool
	bareInput    bool
	suppressBell bool

	inLookup      bool
	search        ReverseSearchState
	lookupBackup  string
	lookupLineLen int
}

// New constructs an Editor reading from stdin and writing to stdout/stderr,
// with a history bounded to historySize entries. Grounded on readline.py's
// NessaidReadline.__init__.
func New(stdin, stdout, stderr *os.File, historySize int) (*Editor, error) {
	reader, err := NewKeyReader(stdin)
	if err != nil {
		return nil, err
	}
	return &Editor{
		term:        NewTerminal(stdout),
		reader:      reader,
		stderr:      stderr,
		bindings:    newKeyBindings(),
		history:     NewHistory(historySize),
		completion:  newCompletionState(),
		enableBell:  true,
		bellSilence: 2 * time.Second,
	}, nil
}

// SetCompleter installs the tab-completion callback (spec.md §6
// set_completer).
func (e *Editor) SetCompleter(c Completer) { e.completion.completer = c }

// ParseAndBind rebinds a key to an operation (spec.md §6 parse_and_bind).
func (e *Editor) ParseAndBind(config string) { e.bindings.parseAndBind(config) }

// SetHistorySize changes the history bound (spec.md §6 set_history_size).
func (e *Editor) SetHistorySize(n int) { e.history.SetMaxSize(n) }

// SetPrepareHistoryEntry installs the per-entry normalizer (spec.md §6
// set_prepare_history_entry).
func (e *Editor) SetPrepareHistoryEntry(f func(string) string) { e.history.SetPrepareEntry(f) }

// EnableBell toggles audible bell feedback (spec.md §6 enable_bell).
func (e *Editor) EnableBell(enable bool) { e.enableBell = enable }

// SetBellSilenceTime sets the bell rate-limit window (spec.md §6
// set_bell_silence_time).
func (e *Editor) SetBellSilenceTime(d time.Duration) { e.bellSilence = d }

// GetLineBuffer returns the buffer of the call currently in progress, or
// "" if none is active (spec.md §6 get_line_buffer).
func (e *Editor) GetLineBuffer() string {
	if e.buf == nil {
		return ""
	}
	return e.buf.Text()
}

// Flush discards any buffered-but-undelivered keys (spec.md §6 flush).
func (e *Editor) Flush() { e.reader.Flush() }

// Close releases the platform KeyReader, restoring the terminal's original
// termios/console state (spec.md §5 "guaranteed release on all paths").
// Callers that construct an Editor with New should defer Close immediately,
// mirroring the teacher's cmd/key demo deferring tty.Restore(). Safe to call
// on a nil reader (e.g. an Editor built directly in tests) and safe to call
// more than once.
func (e *Editor) Close() error {
	if e.reader == nil {
		return nil
	}
	return e.reader.Close()
}

// InsertText feeds each rune of s through the same dispatch a typed key
// goes through, so an embedded control character still fires its bound
// operation (spec.md §4.4 insert_text), with the bell suppressed for the
// duration. The caret is first moved to the end of the line.
//
// A control character routed here that would normally commit the whole
// call (e.g. an embedded CR) still runs its operation, including any
// output it writes (a CR writes its line break); InsertText itself has no
// way to hand a commit back to a caller outside the active Readline/Input
// loop, so — unlike a CR read directly from the KeyReader — it cannot end
// the call. This matches the synchronous usage
// this port targets (spec.md §5's two suspension points are "awaiting the
// next key" and "awaiting an asynchronous completer", not host code
// racing the input loop).
func (e *Editor) InsertText(s string) {
	if e.buf == nil {
		return
	}
	e.buf.MoveEnd(e.term, func() {})
	wasSuppressed := e.suppressBell
	e.suppressBell = true
	for _, r := range s {
		e.applyNormalKey(classifyRune(r))
	}
	e.suppressBell = wasSuppressed
}

// bell emits a rate-limited BEL, honoring suppressBell and enableBell
// (spec.md §4.9).
func (e *Editor) bell() {
	if e.suppressBell || !e.enableBell {
		return
	}
	if time.Since(e.lastBell) < e.bellSilence {
		return
	}
	e.lastBell = time.Now()
	e.term.Bell()
}

// Readline runs a full call with history, completion and reverse-search
// enabled (spec.md §6 readline).
func (e *Editor) Readline(prompt string) (string, error) {
	return e.runInput(prompt, false, false)
}

// Input runs a bare call: no history, no reverse-search, optional masking
// (spec.md §6 input).
func (e *Editor) Input(prompt string, maskInput bool) (string, error) {
	return e.runInput(prompt, maskInput, true)
}

// runInput is _input(prompt, mask, bare) from spec.md §4.8.
func (e *Editor) runInput(prompt string, maskInput, bareInput bool) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.bell()
			if e.stderr != nil {
				fmt.Fprintf(e.stderr, "readline: %v\n", rec)
			}
			result, err = "", fmt.Errorf("readline: %v", rec)
		}
	}()

	e.prompt = prompt
	e.promptWidth = writePrompt(e.term, prompt)

	e.buf = NewEditBuffer()
	e.maskInput = maskInput
	e.bareInput = bareInput
	e.suppressBell = false
	e.inLookup = false
	e.completion.clearLast()
	e.history.ResetNavigation()
	e.term.SetMask(maskInput)

	defer func() {
		e.term.SetMask(false)
		e.buf = nil
	}()

	inputHistory := !bareInput && !maskInput

	for {
		k, rerr := e.reader.ReadOne()
		if rerr != nil {
			if errors.Is(rerr, ErrInterrupt) {
				e.term.WriteUnmasked("\r\n")
				return "", ErrInterrupt
			}
			if errors.Is(rerr, ErrEOF) {
				e.term.WriteUnmasked("\r\n")
				return "", ErrEOF
			}
			if inputHistory {
				e.history.Push(e.buf.Text())
			}
			return e.buf.Text(), rerr
		}

		var (
			committed bool
			payload   string
			derr      error
		)
		if e.inLookup {
			committed, payload, derr = e.handleLookupKey(k)
		} else {
			committed, payload, derr = e.applyNormalKey(k)
		}
		if derr != nil {
			if errors.Is(derr, ErrInterrupt) {
				return "", ErrInterrupt
			}
			if errors.Is(derr, ErrEOF) {
				return "", ErrEOF
			}
			return "", derr
		}
		if committed {
			if inputHistory {
				e.history.Push(payload)
			}
			return payload, nil
		}
	}
}

// applyNormalKey processes k exactly as the main loop would: dispatch if
// bound in the normal table, otherwise insert if printable (spec.md §4.8
// step 3).
func (e *Editor) applyNormalKey(k Key) (committed bool, payload string, err error) {
	if op, ok := e.bindings.operationFor(k); ok {
		if op != OpComplete {
			e.completion.clearLast()
		}
		return e.dispatch(op, k)
	}
	if IsPrintable(k) {
		e.completion.clearLast()
		e.buf.Insert(e.term, k.Rune)
	}
	return false, "", nil
}

// dispatch is the exhaustive operation switch (spec.md §4.8 "Handler
// return contract").
func (e *Editor) dispatch(op Operation, k Key) (committed bool, payload string, err error) {
	switch op {
	case OpCarriageReturn, OpNewline:
		e.term.WriteUnmasked("\r\n")
		return true, e.buf.Text(), nil
	case OpDelete:
		e.buf.DeleteForward(e.term, e.bell)
	case OpComplete:
		e.handleComplete()
	case OpBackspace:
		e.buf.Backspace(e.term, e.bell)
	case OpHistoryPrevious:
		e.historyNavigate(e.history.NavigatePrev)
	case OpHistoryNext:
		e.historyNavigate(e.history.NavigateNext)
	case OpHistoryFirst:
		e.historyNavigate(e.history.NavigateFirst)
	case OpHistoryLast:
		e.historyNavigate(e.history.NavigateLast)
	case OpToggleInsertReplace:
		e.buf.ToggleReplaceMode()
	case OpGotoLineLeft:
		e.buf.MoveLeft(e.term, e.bell)
	case OpGotoLineRight:
		e.buf.MoveRight(e.term, e.bell)
	case OpGotoLineStart:
		e.buf.MoveHome(e.term, e.bell)
	case OpGotoLineEnd:
		e.buf.MoveEnd(e.term, e.bell)
	case OpLineClear:
		e.buf.Clear(e.term, e.bell)
	case OpLineCancel:
		e.term.WriteUnmasked("\r\n")
		return false, "", ErrInterrupt
	case OpLineEOF:
		e.term.WriteUnmasked("\r\n")
		return false, "", ErrEOF
	case OpToggleBell:
		e.enableBell = !e.enableBell
		e.term.Bell()
		if e.enableBell {
			e.term.Bell()
		}
	case OpOpenReverseLookup:
		e.enterLookup()
	default:
		// OpNone and the lookup-only operations (OpLookupBack,
		// OpLookupForward, OpLookupBackspace, OpForwardLookupResult,
		// OpCancelLookupResult) are meaningful only inside reverse-search
		// sub-mode; a normal-mode binding to one of these is a user
		// misconfiguration and is a silent no-op.
	}
	return false, "", nil
}

// historyNavigate runs one of History's Navigate* methods against the
// current buffer and either loads the result or bells.
func (e *Editor) historyNavigate(nav func(current string) (string, bool)) {
	if e.bareInput {
		e.bell()
		return
	}
	line, ok := nav(e.buf.Text())
	if !ok {
		e.bell()
		return
	}
	e.loadLine(line)
}

// loadLine clears the visible line and types replacement in, per
// readline.py's pattern of calling _handle_line_clear then insert_text.
func (e *Editor) loadLine(line string) {
	e.buf.Clear(e.term, func() {})
	e.InsertText(line)
}

// handleComplete drives the installed Completer and repaints the line,
// per spec.md §4.7.
func (e *Editor) handleComplete() {
	if e.completion.completing {
		return
	}
	e.completion.completing = true
	defer func() { e.completion.completing = false }()

	line := e.buf.Text()
	options := e.completion.collect(line)

	if len(options) == 0 {
		if !e.completion.haveLast {
			e.bell()
		}
		return
	}

	e.term.WriteUnmasked("\r\n\r\n")
	for _, o := range options {
		e.term.WriteUnmasked(o + "\r\n")
	}
	e.term.WriteUnmasked("\r\n")
	writePrompt(e.term, e.prompt)
	e.term.Write(e.buf.Text())
	e.buf.parkCaretAtEnd()

	if e.completion.sameAsLast(options, line) {
		e.bell()
	}
	e.completion.recordLast(options, e.buf.Text())
}

// enterLookup starts reverse-incremental search (spec.md §4.6), grounded
// on async_readline.py's _handle_reverse_lookup/_init_lookup_state.
func (e *Editor) enterLookup() {
	if e.bareInput {
		e.bell()
		return
	}
	e.search.Begin(e.buf.Text(), e.history.Size())
	e.lookupBackup = e.buf.Text()
	e.lookupLineLen = e.promptWidth + e.buf.Len()
	e.inLookup = true
	e.renderLookup()
}

// handleLookupKey processes one key while reverse-search sub-mode is
// active (spec.md §4.8 "Default lookup-mode bindings").
func (e *Editor) handleLookupKey(k Key) (committed bool, payload string, err error) {
	op, bound := e.bindings.lookupOperationFor(k)
	if !bound {
		if IsPrintable(k) {
			e.search.Append(k.Rune)
		} else {
			return false, "", nil
		}
	} else {
		switch op {
		case OpLookupBack:
			e.search.SetDirection(DirectionBack)
		case OpLookupForward:
			e.search.SetDirection(DirectionForward)
		case OpLookupBackspace:
			e.search.Backspace()
		case OpCancelLookupResult:
			e.exitLookupCancel()
			return false, "", nil
		case OpForwardLookupResult:
			return e.commitLookup(k)
		default:
			return false, "", nil
		}
	}
	if e.search.Query() != "" {
		e.search.Step(e.history)
	}
	e.renderLookup()
	return false, "", nil
}

// renderLookup repaints the "(failed reverse-i-search`...'): ..." line
// and parks the cursor on the active match offset (spec.md §4.6
// "Rendering").
func (e *Editor) renderLookup() {
	e.eraseLookupLine()

	prompt := e.search.Prompt()
	e.term.WriteUnmasked(prompt)
	e.lookupLineLen = len([]rune(prompt))

	candidateLen := 0
	if c, ok := e.search.Candidate(); ok {
		candidateLen = len([]rune(c))
	}
	caretOffset := candidateLen - e.search.ActiveOffset()
	if caretOffset < 0 {
		caretOffset = 0
	}
	e.term.Backspace(caretOffset)
}

// eraseLookupLine blanks the currently-displayed lookup prompt line.
func (e *Editor) eraseLookupLine() {
	e.term.Backspace(e.lookupLineLen)
	e.term.Spaces(e.lookupLineLen)
	e.term.Backspace(e.lookupLineLen)
}

// commitLookup exits the sub-mode with the active match (or the raw
// query, if nothing matched), then re-dispatches the triggering key
// through the normal binding table, so Enter still commits, arrows still
// navigate, etc. (spec.md §4.6 "commit").
func (e *Editor) commitLookup(triggerKey Key) (committed bool, payload string, err error) {
	candidate, ok := e.search.Candidate()
	if !ok {
		candidate = e.search.Query()
	}
	e.history.SetCursor(e.search.ScanIndex())

	e.eraseLookupLine()
	writePrompt(e.term, e.prompt)
	e.buf.Reset()
	e.inLookup = false
	e.InsertText(candidate)

	if op, ok := e.bindings.operationFor(triggerKey); ok {
		if op != OpComplete {
			e.completion.clearLast()
		}
		return e.dispatch(op, triggerKey)
	}
	return false, "", nil
}

// exitLookupCancel restores the buffer that was active before Ctrl-R was
// pressed (spec.md §4.6 "cancel").
func (e *Editor) exitLookupCancel() {
	e.eraseLookupLine()
	writePrompt(e.term, e.prompt)
	e.buf.Reset()
	e.inLookup = false
	e.history.ResetNavigation()
	e.InsertText(e.lookupBackup)
}
