package readline

import "strings"

// KeyBindings holds the two disjoint binding tables from spec.md §3: normal
// mode and reverse-search lookup mode.
type KeyBindings struct {
	normal map[Key]Operation
	lookup map[Key]Operation
}

func newKeyBindings() *KeyBindings {
	return &KeyBindings{
		normal: defaultNormalBindings(),
		lookup: defaultLookupBindings(),
	}
}

func (b *KeyBindings) loadDefaults() {
	b.normal = defaultNormalBindings()
	b.lookup = defaultLookupBindings()
}

func (b *KeyBindings) operationFor(k Key) (Operation, bool) {
	op, ok := b.normal[k]
	return op, ok
}

func (b *KeyBindings) lookupOperationFor(k Key) (Operation, bool) {
	op, ok := b.lookup[k]
	return op, ok
}

// parseAndBind implements spec.md §4.8/§6 ParseAndBind: "key-name:
// operation-name", case-insensitive, both sides recognized or the whole
// call is a silent no-op (spec.md §7 "Binding parse errors are silent
// no-ops"), grounded on readline.py's parse_and_bind.
func (b *KeyBindings) parseAndBind(config string) {
	parts := strings.SplitN(config, ":", 2)
	if len(parts) != 2 {
		return
	}
	keyName := strings.ToLower(strings.TrimSpace(parts[0]))
	opName := strings.ToLower(strings.TrimSpace(parts[1]))

	key, ok := KeyNameMap[keyName]
	if !ok {
		return
	}
	op, ok := operationNames[opName]
	if !ok {
		return
	}
	b.normal[key] = op
}
