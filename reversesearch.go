package readline

import "strings"

// Direction is the reverse-search scan direction, toggled by Ctrl-R/Ctrl-S.
type Direction int

const (
	DirectionBack Direction = iota
	DirectionForward
)

// ReverseSearchState is the Ctrl-R incremental-search sub-mode, per
// spec.md §4.6. Grounded on async_readline.py's _init_lookup_state /
// _handle_reverse_lookup / _lookup_putchar / _handle_lookup_backspace.
//
// Per spec.md §9's resolved open question, query is matched as a literal
// substring (code-point comparison at each offset, see literalOffsets),
// not a regex.
type ReverseSearchState struct {
	query       string
	direction   Direction
	scanIndex   int
	historySize int
	matchLine   *string
	offsets     []int
	activeIndex int
	failed      bool
}

// Begin enters the sub-mode: the current line seeds the query (so a
// partially-typed command can be searched for directly), and the scan
// starts just past the newest history entry.
func (r *ReverseSearchState) Begin(currentLine string, historySize int) {
	*r = ReverseSearchState{
		query:       currentLine,
		direction:   DirectionBack,
		scanIndex:   historySize,
		historySize: historySize,
		failed:      true,
	}
}

// SetDirection changes the scan direction for subsequent Step calls
// (bound to lookup-back/lookup-forward, default Ctrl-R/Ctrl-S).
func (r *ReverseSearchState) SetDirection(d Direction) { r.direction = d }

// Append adds ch to the query and restarts the scan from the newest entry,
// per async_readline.py's _lookup_putchar (which calls _init_lookup_state
// on every keystroke rather than continuing from the current offset).
func (r *ReverseSearchState) Append(ch rune) {
	r.query += string(ch)
	r.resetScan()
}

// Backspace removes the last rune of the query and restarts the scan, per
// async_readline.py's _handle_lookup_backspace (same _init_lookup_state
// call as Append).
func (r *ReverseSearchState) Backspace() {
	if r.query == "" {
		return
	}
	runes := []rune(r.query)
	r.query = string(runes[:len(runes)-1])
	r.resetScan()
}

// resetScan restarts the scan from the newest history entry in the back
// direction, discarding any in-progress match.
func (r *ReverseSearchState) resetScan() {
	r.direction = DirectionBack
	r.scanIndex = r.historySize
	r.matchLine = nil
	r.offsets = nil
	r.activeIndex = 0
	r.failed = true
}

// Query returns the current search string.
func (r *ReverseSearchState) Query() string { return r.query }

// Failed reports whether the current state has no match.
func (r *ReverseSearchState) Failed() bool { return r.failed }

// ScanIndex returns the history index the scan is positioned at: the
// matched entry while Candidate reports a match, otherwise the last index
// examined (or the starting index if nothing was examined) (spec.md §4.6
// commit: "history.cursor := scan_index").
func (r *ReverseSearchState) ScanIndex() int { return r.scanIndex }

// Candidate returns the currently matched history line, if any.
func (r *ReverseSearchState) Candidate() (string, bool) {
	if r.matchLine == nil {
		return "", false
	}
	return *r.matchLine, true
}

// ActiveOffset returns the offset of the active match within Candidate, or
// len(candidate) if there is no match (caret parks at the end of the
// rendered candidate).
func (r *ReverseSearchState) ActiveOffset() int {
	if r.matchLine == nil || len(r.offsets) == 0 {
		if r.matchLine != nil {
			return len([]rune(*r.matchLine))
		}
		return 0
	}
	return r.offsets[r.activeIndex]
}

// Step advances the search one tick, per spec.md §4.6's five-step
// algorithm. It returns nothing; the caller re-renders after every call.
func (r *ReverseSearchState) Step(history *History) {
	if history.Size() == 0 {
		r.failed = true
		return
	}

	if r.query == "" {
		return
	}

	if r.matchLine != nil {
		if r.direction == DirectionForward {
			if r.activeIndex < len(r.offsets)-1 {
				r.activeIndex++
				return
			}
			r.matchLine = nil
			r.scanIndex++
		} else {
			if r.activeIndex > 0 {
				r.activeIndex--
				return
			}
			r.matchLine = nil
			r.scanIndex--
		}
	} else {
		if r.direction == DirectionForward {
			if r.scanIndex < history.Size() {
				r.scanIndex++
			} else {
				r.failed = true
			}
		} else {
			if r.scanIndex >= 0 {
				r.scanIndex--
			} else {
				r.failed = true
			}
		}
	}

	for r.matchLine == nil {
		if r.scanIndex < 0 || r.scanIndex >= history.Size() {
			r.failed = true
			return
		}
		line, _ := history.At(r.scanIndex)
		offsets := literalOffsets(line, r.query)
		if len(offsets) == 0 {
			if r.direction == DirectionForward {
				if r.scanIndex+1 >= history.Size() {
					r.failed = true
					return
				}
				r.scanIndex++
			} else {
				if r.scanIndex-1 < 0 {
					r.failed = true
					return
				}
				r.scanIndex--
			}
			continue
		}
		r.matchLine = &line
		r.offsets = offsets
		r.failed = false
		if r.direction == DirectionForward {
			r.activeIndex = 0
		} else {
			r.activeIndex = len(offsets) - 1
		}
	}
}

// literalOffsets returns every start index (in code points) of query
// within line, treated as a literal substring per spec.md §9.
func literalOffsets(line, query string) []int {
	if query == "" {
		return nil
	}
	var offsets []int
	runes := []rune(line)
	q := []rune(query)
	for i := 0; i+len(q) <= len(runes); i++ {
		if string(runes[i:i+len(q)]) == string(q) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// Prompt renders the lookup-prompt text per spec.md §4.6: "(failed
// reverse-i-search`<query>'): <candidate>".
func (r *ReverseSearchState) Prompt() string {
	var b strings.Builder
	b.WriteByte('(')
	if r.failed {
		b.WriteString("failed ")
	}
	b.WriteString("reverse-i-search`")
	b.WriteString(r.query)
	b.WriteString("'): ")
	if r.matchLine != nil {
		b.WriteString(*r.matchLine)
	}
	return b.String()
}
