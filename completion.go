package readline

// Completer is the pluggable tab-completion callback, per spec.md §4.7:
// Complete(line, index) returns the index'th suggestion for line, or
// ok=false to terminate enumeration. Grounded on readline.py's
// set_completer/_completer(line, index) protocol; the source's "return
// None to stop" becomes the idiomatic Go (string, bool) pair.
type Completer interface {
	Complete(line string, index int) (string, bool)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(line string, index int) (string, bool)

func (f CompleterFunc) Complete(line string, index int) (string, bool) { return f(line, index) }

// completionState is the Editor's per-instance memory of the last
// completion round, used for the double-tab bell convention (spec.md
// §4.7 point 2), like readline.py's _last_completion/
// _last_completion_linebuf. The struct lives as long as the Editor, but
// runInput clears the last-round memory at the start of every call.
type completionState struct {
	completer  Completer
	completing bool

	lastSet    map[string]bool
	lastBuffer string
	haveLast   bool
}

func newCompletionState() *completionState {
	return &completionState{}
}

// collect drives the completer for index = 0, 1, 2, ... until it returns
// ok=false, per spec.md §4.7.
func (c *completionState) collect(line string) []string {
	if c.completer == nil {
		return nil
	}
	var out []string
	for i := 0; ; i++ {
		s, ok := c.completer.Complete(line, i)
		if !ok {
			break
		}
		out = append(out, s)
	}
	return out
}

// sameAsLast reports whether options/line match the previous completion
// round exactly (order-independent on the option set).
func (c *completionState) sameAsLast(options []string, line string) bool {
	if !c.haveLast || c.lastBuffer != line {
		return false
	}
	if len(options) != len(c.lastSet) {
		return false
	}
	for _, o := range options {
		if !c.lastSet[o] {
			return false
		}
	}
	return true
}

// recordLast stores options/line as the new "last completion" memory.
func (c *completionState) recordLast(options []string, line string) {
	set := make(map[string]bool, len(options))
	for _, o := range options {
		set[o] = true
	}
	c.lastSet = set
	c.lastBuffer = line
	c.haveLast = true
}

// clearLast drops the "last completion" memory; any non-complete key does
// this (spec.md §4.8 step 3: "if it was not the complete op, clear
// last_completion_*").
func (c *completionState) clearLast() {
	c.lastSet = nil
	c.lastBuffer = ""
	c.haveLast = false
}
