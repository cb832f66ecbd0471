package readline

import "testing"

func TestDefaultBindingsKnownKeys(t *testing.T) {
	b := newKeyBindings()
	cases := []struct {
		k    Key
		want Operation
	}{
		{Key{Kind: KeyTab}, OpComplete},
		{Key{Kind: KeyUp}, OpHistoryPrevious},
		{Key{Kind: KeyDown}, OpHistoryNext},
		{Key{Kind: KeyCtrl, Rune: 'r'}, OpOpenReverseLookup},
		{Key{Kind: KeyCtrl, Rune: 'c'}, OpLineCancel},
		{Key{Kind: KeyCtrl, Rune: 'd'}, OpLineEOF},
		{Key{Kind: KeyCR}, OpCarriageReturn},
	}
	for _, c := range cases {
		op, ok := b.operationFor(c.k)
		if !ok || op != c.want {
			t.Fatalf("operationFor(%v) = %v, %v; want %v", c.k, op, ok, c.want)
		}
	}
}

func TestDefaultBindingsUnknownKeyNotBound(t *testing.T) {
	b := newKeyBindings()
	if _, ok := b.operationFor(Key{Kind: KeyChar, Rune: 'q'}); ok {
		t.Fatalf("expected plain char to be unbound in normal table")
	}
}

func TestParseAndBindRebinds(t *testing.T) {
	b := newKeyBindings()
	b.parseAndBind("ctrl-x: line-clear")
	op, ok := b.operationFor(Key{Kind: KeyCtrl, Rune: 'x'})
	if !ok || op != OpLineClear {
		t.Fatalf("parseAndBind did not rebind ctrl-x, got %v, %v", op, ok)
	}
}

func TestParseAndBindIsCaseInsensitive(t *testing.T) {
	b := newKeyBindings()
	b.parseAndBind("CTRL-X: LINE-CLEAR")
	op, ok := b.operationFor(Key{Kind: KeyCtrl, Rune: 'x'})
	if !ok || op != OpLineClear {
		t.Fatalf("parseAndBind not case-insensitive, got %v, %v", op, ok)
	}
}

func TestParseAndBindUnknownIsSilentNoOp(t *testing.T) {
	b := newKeyBindings()
	before := len(b.normal)
	b.parseAndBind("not-a-key: line-clear")
	b.parseAndBind("ctrl-x: not-an-operation")
	b.parseAndBind("malformed")
	if len(b.normal) != before {
		t.Fatalf("expected unrecognized parse_and_bind calls to be no-ops")
	}
}

func TestLookupBindingsDefaults(t *testing.T) {
	b := newKeyBindings()
	op, ok := b.lookupOperationFor(Key{Kind: KeyCtrl, Rune: 'r'})
	if !ok || op != OpLookupBack {
		t.Fatalf("lookupOperationFor(ctrl-r) = %v, %v", op, ok)
	}
	op, ok = b.lookupOperationFor(Key{Kind: KeyCR})
	if !ok || op != OpForwardLookupResult {
		t.Fatalf("lookupOperationFor(CR) = %v, %v", op, ok)
	}
}
