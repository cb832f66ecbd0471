package readline

// History is the bounded ring of committed lines plus the cursor used for
// up/down navigation during an active Readline call, per spec.md §3/§4.5.
//
// Grounded on readline.py's _history/_history_index/_input_backup and
// async_readline.py's _handle_history_previous/_next/_start/_end.
type History struct {
	entries []string
	maxSize int
	cursor  int // -1 == Python's None ("not navigating"); see SPEC_FULL.md §3.

	savedBuffer  *string
	prepareEntry func(string) string
}

// NewHistory returns a History bounded to maxSize entries.
func NewHistory(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &History{
		maxSize:      maxSize,
		cursor:       -1,
		prepareEntry: func(s string) string { return s },
	}
}

// SetMaxSize changes the bound, evicting from the front if now over.
func (h *History) SetMaxSize(n int) {
	if n <= 0 {
		return
	}
	h.maxSize = n
	for len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// SetPrepareEntry installs the per-entry normalizer (readline.py's
// set_prepare_history_entry), used both when pushing and when comparing for
// dedup.
func (h *History) SetPrepareEntry(f func(string) string) {
	if f == nil {
		f = func(s string) string { return s }
	}
	h.prepareEntry = f
}

// Push appends line (through the normalizer) unless it is empty or equal
// to the most recent entry, evicting from the front on overflow.
func (h *History) Push(line string) {
	if line == "" {
		return
	}
	entry := h.prepareEntry(line)
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	for len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Size returns the number of stored entries.
func (h *History) Size() int { return len(h.entries) }

// At returns the i'th entry, oldest first.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Cursor returns the current navigation cursor (-1 if not navigating).
func (h *History) Cursor() int { return h.cursor }

// SetCursor positions the navigation cursor directly; used on reverse-search
// commit (spec.md §4.6 "history.cursor := scan_index").
func (h *History) SetCursor(c int) { h.cursor = c }

// ResetNavigation discards in-progress up/down navigation state, called at
// the start of each Readline/Input call and on reverse-search cancel.
func (h *History) ResetNavigation() {
	h.cursor = -1
	h.savedBuffer = nil
}

// beginNavigation snapshots current, the buffer being edited, the first
// time any navigation key fires in a call (readline.py: "if
// self._input_backup is None: self._input_backup = self._line_buffer").
func (h *History) beginNavigation(current string) {
	if h.cursor == -1 {
		h.cursor = len(h.entries)
	}
	if h.savedBuffer == nil {
		saved := current
		h.savedBuffer = &saved
	}
}

// NavigatePrev moves one entry older. ok is false (bell) at the oldest
// entry or on an empty history.
func (h *History) NavigatePrev(current string) (line string, ok bool) {
	h.beginNavigation(current)
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	if h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// NavigateNext moves one entry newer, or restores the saved input once the
// newest entry is passed. ok is false (bell) only when already at the
// newest position with nothing left to restore.
func (h *History) NavigateNext(current string) (line string, ok bool) {
	h.beginNavigation(current)
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor < len(h.entries) {
		return h.entries[h.cursor], true
	}
	if h.savedBuffer != nil && *h.savedBuffer == current {
		return "", false
	}
	if h.savedBuffer != nil {
		restored := *h.savedBuffer
		h.savedBuffer = nil
		return restored, true
	}
	return "", false
}

// NavigateFirst jumps to the oldest entry. ok is false (bell) on an empty
// history or when already there.
func (h *History) NavigateFirst(current string) (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	h.beginNavigation(current)
	if h.cursor == 0 {
		return "", false
	}
	h.cursor = 0
	return h.entries[0], true
}

// NavigateLast jumps back to the current (uncommitted) input. ok is false
// (bell) on an empty history or when already there.
func (h *History) NavigateLast(current string) (line string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	h.beginNavigation(current)
	if h.cursor == len(h.entries) {
		return "", false
	}
	h.cursor = len(h.entries)
	restored := current
	if h.savedBuffer != nil {
		restored = *h.savedBuffer
		h.savedBuffer = nil
	}
	return restored, true
}
