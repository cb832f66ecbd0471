package readline

import "fmt"

// KeyKind is the closed set of semantic key shapes a KeyReader can produce.
// A SemanticKey (the Key type below) is always one of these, optionally
// carrying a payload rune for the parametric families (KeyCtrl, KeyAlt,
// KeyCtrlAlt carry the letter; KeyChar carries the typed code point).
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyTab
	KeyCR
	KeyLF
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrl
	KeyAlt
	KeyCtrlAlt
	KeyCtrlAltDelete
)

// Key is a SemanticKey: either a single printable code point (KeyChar) or
// one of the named keys in KeyKind. KeyCtrl/KeyAlt/KeyCtrlAlt carry the
// lowercase letter they combine with in Rune, which is how this collapses
// the source's one-named-constant-per-letter scheme (CTRL_A..CTRL_Z,
// ALT_A..ALT_Z, CTRL_ALT_A..CTRL_ALT_Z) into three enum values.
type Key struct {
	Kind KeyKind
	Rune rune
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		return string(k.Rune)
	case KeyCtrl:
		return fmt.Sprintf("ctrl-%c", k.Rune)
	case KeyAlt:
		return fmt.Sprintf("alt-%c", k.Rune)
	case KeyCtrlAlt:
		return fmt.Sprintf("ctrl-alt-%c", k.Rune)
	default:
		if name, ok := keyKindNames[k.Kind]; ok {
			return name
		}
		return "unknown"
	}
}

var keyKindNames = map[KeyKind]string{
	KeyTab:           "tab",
	KeyCR:            "cr",
	KeyLF:            "lf",
	KeyEsc:           "esc",
	KeyBackspace:     "backspace",
	KeyDelete:        "delete",
	KeyInsert:        "insert",
	KeyHome:          "home",
	KeyEnd:           "end",
	KeyPageUp:        "page-up",
	KeyPageDown:      "page-down",
	KeyUp:            "up",
	KeyDown:          "down",
	KeyLeft:          "left",
	KeyRight:         "right",
	KeyCtrlAltDelete: "ctrl-alt-delete",
}

// Byte values for the single-byte named keys, per spec.md §4.1.
const (
	byteCR        = 0x0D
	byteLF        = 0x0A
	byteTab       = 0x09
	byteEsc       = 0x1B
	byteBackspace = 0x7F
)

// CtrlByte returns the control-byte encoding of ctrl-<letter> (0x01..0x1A).
func CtrlByte(letter rune) byte {
	return byte(letter-'a') + 1
}

// Encode returns the canonical byte sequence for k; decodeSequence maps
// each of these sequences back to the same Key.
func Encode(k Key) []byte {
	switch k.Kind {
	case KeyChar:
		return []byte(string(k.Rune))
	case KeyTab:
		return []byte{byteTab}
	case KeyCR:
		return []byte{byteCR}
	case KeyLF:
		return []byte{byteLF}
	case KeyEsc:
		return []byte{byteEsc}
	case KeyBackspace:
		return []byte{byteBackspace}
	case KeyUp:
		return []byte{byteEsc, '[', 'A'}
	case KeyDown:
		return []byte{byteEsc, '[', 'B'}
	case KeyRight:
		return []byte{byteEsc, '[', 'C'}
	case KeyLeft:
		return []byte{byteEsc, '[', 'D'}
	case KeyHome:
		return []byte{byteEsc, '[', 'H'}
	case KeyEnd:
		return []byte{byteEsc, '[', 'F'}
	case KeyInsert:
		return []byte{byteEsc, '[', '2', '~'}
	case KeyDelete:
		return []byte{byteEsc, '[', '3', '~'}
	case KeyPageUp:
		return []byte{byteEsc, '[', '5', '~'}
	case KeyPageDown:
		return []byte{byteEsc, '[', '6', '~'}
	case KeyCtrl:
		return []byte{CtrlByte(k.Rune)}
	case KeyAlt:
		return []byte{byteEsc, byte(k.Rune)}
	case KeyCtrlAlt:
		return []byte{byteEsc, CtrlByte(k.Rune)}
	case KeyCtrlAltDelete:
		return []byte{byteEsc, '[', '3', '^'}
	default:
		return nil
	}
}

// classifyByte turns a single non-escape byte into its SemanticKey, per
// spec.md §4.2 step 1 ("emit it as-is").
func classifyByte(b byte) Key {
	return classifyRune(rune(b))
}

// classifyRune is classifyByte generalized to a decoded code point, so the
// same control-byte table applies whether the rune came off the wire one
// byte at a time or was assembled from a multi-byte UTF-8 sequence. Editor's
// InsertText (spec.md §4.4 "insert_text") uses this to let embedded control
// characters in a programmatically-inserted string still fire bindings, the
// way readline.py's send() feeds inserted text back through the same
// per-character dispatch as typed input.
func classifyRune(r rune) Key {
	switch r {
	case byteCR:
		return Key{Kind: KeyCR}
	case byteLF:
		return Key{Kind: KeyLF}
	case byteTab:
		return Key{Kind: KeyTab}
	case byteBackspace:
		return Key{Kind: KeyBackspace}
	case byteEsc:
		return Key{Kind: KeyEsc}
	}
	if r >= 0x01 && r <= 0x1A {
		return Key{Kind: KeyCtrl, Rune: rune('a') + r - 1}
	}
	return Key{Kind: KeyChar, Rune: r}
}

// keyName identifies the parse-and-bind name vocabulary from spec.md §4.1.
// It is the inverse of KeyNameMap.
func keyName(k Key) (string, bool) {
	for name, candidate := range KeyNameMap {
		if candidate == k {
			return name, true
		}
	}
	return "", false
}

// KeyNameMap is the canonical name->SemanticKey map used by ParseAndBind,
// equivalent to the source's KEY_NAME_MAP (key.py). Per spec.md §9 design
// notes, this is the complete map; a second, smaller SPECIAL_KEY_MAP exists
// in the source's readline.py but disagrees with it in places (missing
// ctrl-b/ctrl-f/etc, and one literal bug binding "ctrl-d" twice) — the
// spec prefers the complete map, so only one is implemented here.
var KeyNameMap = buildKeyNameMap()

func buildKeyNameMap() map[string]Key {
	m := map[string]Key{
		"cr":              {Kind: KeyCR},
		"lf":              {Kind: KeyLF},
		"tab":             {Kind: KeyTab},
		"up":              {Kind: KeyUp},
		"down":            {Kind: KeyDown},
		"page-up":         {Kind: KeyPageUp},
		"page-down":       {Kind: KeyPageDown},
		"insert":          {Kind: KeyInsert},
		"delete":          {Kind: KeyDelete},
		"backspace":       {Kind: KeyBackspace},
		"home":            {Kind: KeyHome},
		"end":             {Kind: KeyEnd},
		"left":            {Kind: KeyLeft},
		"right":           {Kind: KeyRight},
		"esc":             {Kind: KeyEsc},
		"escape":          {Kind: KeyEsc},
		"ctrl-alt-delete": {Kind: KeyCtrlAltDelete},
	}
	for c := 'a'; c <= 'z'; c++ {
		m[fmt.Sprintf("ctrl-%c", c)] = Key{Kind: KeyCtrl, Rune: c}
		m[fmt.Sprintf("alt-%c", c)] = Key{Kind: KeyAlt, Rune: c}
		m[fmt.Sprintf("ctrl-alt-%c", c)] = Key{Kind: KeyCtrlAlt, Rune: c}
	}
	return m
}

// IsPrintable reports whether k is a single printable character suitable
// for direct insertion into the edit buffer.
func IsPrintable(k Key) bool {
	return k.Kind == KeyChar && k.Rune >= 0x20 && k.Rune != 0x7F
}
