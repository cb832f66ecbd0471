package readline

import "testing"

func TestSequenceKeyReaderReadOne(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{'a', byteEsc, '[', 'A'}}
	r := newSequenceKeyReader(src)

	k, err := r.ReadOne()
	if err != nil || k != (Key{Kind: KeyChar, Rune: 'a'}) {
		t.Fatalf("ReadOne #1 = %+v, %v", k, err)
	}
	k, err = r.ReadOne()
	if err != nil || k != (Key{Kind: KeyUp}) {
		t.Fatalf("ReadOne #2 = %+v, %v", k, err)
	}
}

func TestSequenceKeyReaderReadBatchDrains(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{'a', 'b', 'c'}}
	r := newSequenceKeyReader(src)

	batch, err := r.ReadBatch()
	if err != nil {
		t.Fatalf("ReadBatch error: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("ReadBatch drained %d keys, want 3", len(batch))
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		if batch[i] != (Key{Kind: KeyChar, Rune: want}) {
			t.Fatalf("batch[%d] = %+v", i, batch[i])
		}
	}
}

func TestSequenceKeyReaderFlushDropsPending(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{'a', 'b'}}
	r := newSequenceKeyReader(src)
	if _, err := r.ReadBatch(); err != nil {
		t.Fatalf("ReadBatch error: %v", err)
	}
	r.Flush()
	if len(r.pending) != 0 {
		t.Fatalf("expected Flush to drop pending keys")
	}
}

func TestDecodeSequenceTruncatedEscape(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{byteEsc}}
	k, err := decodeSequence(src)
	if err != nil || k != (Key{Kind: KeyEsc}) {
		t.Fatalf("lone ESC = %+v, %v", k, err)
	}
}

func TestDecodeSequenceAltCombo(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{byteEsc, 'b'}}
	k, err := decodeSequence(src)
	if err != nil || k != (Key{Kind: KeyAlt, Rune: 'b'}) {
		t.Fatalf("alt-b = %+v, %v", k, err)
	}
}

func TestDecodeSequenceFourByte(t *testing.T) {
	src := &fakeByteSource{bytes: []byte{byteEsc, '[', '3', '~'}}
	k, err := decodeSequence(src)
	if err != nil || k != (Key{Kind: KeyDelete}) {
		t.Fatalf("delete sequence = %+v, %v", k, err)
	}
}

// fakeKeyReader replays a fixed slice of keys for Editor-level tests.
type fakeKeyReader struct {
	keys   []Key
	pos    int
	err    error
	closed int
}

func (f *fakeKeyReader) ReadOne() (Key, error) {
	if f.pos >= len(f.keys) {
		if f.err != nil {
			return Key{}, f.err
		}
		return Key{}, ErrReadKey
	}
	k := f.keys[f.pos]
	f.pos++
	return k, nil
}

func (f *fakeKeyReader) ReadBatch() ([]Key, error) {
	k, err := f.ReadOne()
	if err != nil {
		return nil, err
	}
	return []Key{k}, nil
}

func (f *fakeKeyReader) Flush() {}

func (f *fakeKeyReader) Close() error {
	f.closed++
	return nil
}

func TestAsyncKeyReaderDelegates(t *testing.T) {
	inner := &fakeKeyReader{keys: []Key{{Kind: KeyChar, Rune: 'x'}, {Kind: KeyChar, Rune: 'y'}}}
	r := NewAsyncKeyReader(inner, 2)

	k, err := r.ReadOne()
	if err != nil || k != (Key{Kind: KeyChar, Rune: 'x'}) {
		t.Fatalf("async ReadOne #1 = %+v, %v", k, err)
	}
	k, err = r.ReadOne()
	if err != nil || k != (Key{Kind: KeyChar, Rune: 'y'}) {
		t.Fatalf("async ReadOne #2 = %+v, %v", k, err)
	}
}

func TestAsyncKeyReaderPropagatesError(t *testing.T) {
	inner := &fakeKeyReader{err: ErrInterrupt}
	r := NewAsyncKeyReader(inner, 1)
	_, err := r.ReadOne()
	if err != ErrInterrupt {
		t.Fatalf("expected ErrInterrupt propagated, got %v", err)
	}
}
