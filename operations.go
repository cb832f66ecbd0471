package readline

// Operation is a member of the closed operation vocabulary from spec.md
// §4.8. Bindings map a Key to an Operation rather than to a first-class
// function reference — per spec.md §9 design notes, this keeps the
// dispatcher an exhaustive match and ParseAndBind a pure string lookup.
type Operation int

const (
	OpNone Operation = iota
	OpCarriageReturn
	OpNewline
	OpDelete
	OpComplete
	OpBackspace
	OpLookupBackspace
	OpHistoryPrevious
	OpHistoryNext
	OpHistoryFirst
	OpHistoryLast
	OpToggleInsertReplace
	OpGotoLineLeft
	OpGotoLineRight
	OpGotoLineStart
	OpGotoLineEnd
	OpLineClear
	OpLookupBack
	OpLookupForward
	OpLineCancel
	OpLineEOF
	OpToggleBell
	OpOpenReverseLookup
	OpForwardLookupResult
	OpCancelLookupResult
)

// operationNames is the string vocabulary ParseAndBind accepts, matching
// spec.md §4.8 verbatim.
var operationNames = map[string]Operation{
	"carriage-return":        OpCarriageReturn,
	"newline":                OpNewline,
	"delete":                 OpDelete,
	"complete":               OpComplete,
	"backspace":              OpBackspace,
	"lookup-backspace":       OpLookupBackspace,
	"history-previous":       OpHistoryPrevious,
	"history-next":           OpHistoryNext,
	"history-first":          OpHistoryFirst,
	"history-last":           OpHistoryLast,
	"toggle-insert-replace":  OpToggleInsertReplace,
	"goto-line-left":         OpGotoLineLeft,
	"goto-line-right":        OpGotoLineRight,
	"goto-line-start":        OpGotoLineStart,
	"goto-line-end":          OpGotoLineEnd,
	"line-clear":             OpLineClear,
	"lookup-back":            OpLookupBack,
	"lookup-forward":         OpLookupForward,
	"line-cancel":            OpLineCancel,
	"line-eof":               OpLineEOF,
	"toggle-bell":            OpToggleBell,
	"open-reverse-lookup":    OpOpenReverseLookup,
	"forward-lookup-result":  OpForwardLookupResult,
	"cancel-lookup-result":   OpCancelLookupResult,
	"none":                   OpNone,
}

// defaultNormalBindings is the verbatim default binding table from
// spec.md §4.8.
func defaultNormalBindings() map[Key]Operation {
	return map[Key]Operation{
		{Kind: KeyTab}:                   OpComplete,
		{Kind: KeyUp}:                    OpHistoryPrevious,
		{Kind: KeyDown}:                  OpHistoryNext,
		{Kind: KeyPageUp}:                OpHistoryFirst,
		{Kind: KeyPageDown}:              OpHistoryLast,
		{Kind: KeyInsert}:                OpToggleInsertReplace,
		{Kind: KeyDelete}:                OpDelete,
		{Kind: KeyBackspace}:             OpBackspace,
		{Kind: KeyHome}:                  OpGotoLineStart,
		{Kind: KeyEnd}:                   OpGotoLineEnd,
		{Kind: KeyLeft}:                  OpGotoLineLeft,
		{Kind: KeyRight}:                 OpGotoLineRight,
		{Kind: KeyCtrl, Rune: 'a'}:       OpGotoLineStart,
		{Kind: KeyCtrl, Rune: 'e'}:       OpGotoLineEnd,
		{Kind: KeyCtrl, Rune: 'l'}:       OpLineClear,
		{Kind: KeyCtrl, Rune: 'c'}:       OpLineCancel,
		{Kind: KeyCtrl, Rune: 'd'}:       OpLineEOF,
		{Kind: KeyLF}:                    OpNewline,
		{Kind: KeyCR}:                    OpCarriageReturn,
		{Kind: KeyCtrl, Rune: 'b'}:       OpToggleBell,
		{Kind: KeyCtrl, Rune: 'r'}:       OpOpenReverseLookup,
	}
}

// defaultLookupBindings is the verbatim default lookup-mode binding table
// from spec.md §4.8.
func defaultLookupBindings() map[Key]Operation {
	commit := OpForwardLookupResult
	return map[Key]Operation{
		{Kind: KeyTab}:             commit,
		{Kind: KeyEsc}:             OpCancelLookupResult,
		{Kind: KeyLF}:              commit,
		{Kind: KeyCR}:              commit,
		{Kind: KeyRight}:           commit,
		{Kind: KeyLeft}:            commit,
		{Kind: KeyUp}:              commit,
		{Kind: KeyDown}:            commit,
		{Kind: KeyPageUp}:          commit,
		{Kind: KeyPageDown}:        commit,
		{Kind: KeyInsert}:          commit,
		{Kind: KeyDelete}:          commit,
		{Kind: KeyCtrl, Rune: 'r'}: OpLookupBack,
		{Kind: KeyCtrl, Rune: 's'}: OpLookupForward,
		{Kind: KeyBackspace}:       OpLookupBackspace,
	}
}
