package readline

import "testing"

func TestClassifyByte(t *testing.T) {
	cases := []struct {
		b    byte
		want Key
	}{
		{'a', Key{Kind: KeyChar, Rune: 'a'}},
		{byteCR, Key{Kind: KeyCR}},
		{byteLF, Key{Kind: KeyLF}},
		{byteTab, Key{Kind: KeyTab}},
		{byteBackspace, Key{Kind: KeyBackspace}},
		{byteEsc, Key{Kind: KeyEsc}},
		{0x01, Key{Kind: KeyCtrl, Rune: 'a'}},
		{0x12, Key{Kind: KeyCtrl, Rune: 'r'}},
		{0x1A, Key{Kind: KeyCtrl, Rune: 'z'}},
	}
	for _, c := range cases {
		if got := classifyByte(c.b); got != c.want {
			t.Fatalf("classifyByte(%#x) = %+v, want %+v", c.b, got, c.want)
		}
	}
}

func TestClassifyRuneMultiByte(t *testing.T) {
	if got := classifyRune('é'); got != (Key{Kind: KeyChar, Rune: 'é'}) {
		t.Fatalf("classifyRune('é') = %+v", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	keys := []Key{
		{Kind: KeyUp},
		{Kind: KeyDown},
		{Kind: KeyLeft},
		{Kind: KeyRight},
		{Kind: KeyHome},
		{Kind: KeyEnd},
		{Kind: KeyInsert},
		{Kind: KeyDelete},
		{Kind: KeyPageUp},
		{Kind: KeyPageDown},
		{Kind: KeyCtrlAltDelete},
		{Kind: KeyCtrl, Rune: 'r'},
		{Kind: KeyAlt, Rune: 'b'},
		{Kind: KeyCtrlAlt, Rune: 'd'},
	}
	for _, k := range keys {
		encoded := Encode(k)
		src := &fakeByteSource{bytes: encoded}
		got, err := decodeSequence(src)
		if err != nil {
			t.Fatalf("decodeSequence(%v) error: %v", k, err)
		}
		if got != k {
			t.Fatalf("round trip %+v -> %v -> %+v", k, encoded, got)
		}
	}
}

func TestKeyNameMapCoversLetters(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		name := string([]byte{'c', 't', 'r', 'l', '-', c})
		k, ok := KeyNameMap[name]
		if !ok || k.Kind != KeyCtrl || k.Rune != rune(c) {
			t.Fatalf("KeyNameMap[%q] = %+v, %v", name, k, ok)
		}
	}
}

func TestIsPrintable(t *testing.T) {
	if !IsPrintable(Key{Kind: KeyChar, Rune: 'x'}) {
		t.Fatalf("expected 'x' to be printable")
	}
	if IsPrintable(Key{Kind: KeyChar, Rune: 0x7F}) {
		t.Fatalf("expected DEL to not be printable")
	}
	if IsPrintable(Key{Kind: KeyCR}) {
		t.Fatalf("expected CR to not be printable")
	}
}

// fakeByteSource replays a fixed byte slice, used by keyreader_test.go too.
type fakeByteSource struct {
	bytes []byte
	pos   int
}

func (f *fakeByteSource) readByte() (byte, error) {
	if f.pos >= len(f.bytes) {
		return 0, ErrReadKey
	}
	b := f.bytes[f.pos]
	f.pos++
	return b, nil
}

func (f *fakeByteSource) tryReadByte() (byte, bool, error) {
	if f.pos >= len(f.bytes) {
		return 0, false, nil
	}
	b := f.bytes[f.pos]
	f.pos++
	return b, true, nil
}
