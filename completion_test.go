package readline

import "testing"

func prefixCompleterFor(options []string) Completer {
	return CompleterFunc(func(line string, index int) (string, bool) {
		var matches []string
		for _, o := range options {
			if len(o) >= len(line) && o[:len(line)] == line {
				matches = append(matches, o)
			}
		}
		if index >= len(matches) {
			return "", false
		}
		return matches[index], true
	})
}

func TestCompletionCollect(t *testing.T) {
	c := newCompletionState()
	c.completer = prefixCompleterFor([]string{"help", "history", "halt"})
	got := c.collect("h")
	want := []string{"help", "history", "halt"}
	if len(got) != len(want) {
		t.Fatalf("collect() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("collect()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompletionNoCompleterReturnsNil(t *testing.T) {
	c := newCompletionState()
	if got := c.collect("x"); got != nil {
		t.Fatalf("expected nil with no completer, got %v", got)
	}
}

func TestCompletionSameAsLast(t *testing.T) {
	c := newCompletionState()
	opts := []string{"a", "b"}
	c.recordLast(opts, "li")
	if !c.sameAsLast(opts, "li") {
		t.Fatalf("expected sameAsLast to match identical round")
	}
	if c.sameAsLast(opts, "other") {
		t.Fatalf("expected sameAsLast to reject different buffer")
	}
	if c.sameAsLast([]string{"a"}, "li") {
		t.Fatalf("expected sameAsLast to reject different option set")
	}
}

func TestCompletionClearLast(t *testing.T) {
	c := newCompletionState()
	c.recordLast([]string{"a"}, "li")
	c.clearLast()
	if c.haveLast {
		t.Fatalf("expected clearLast to reset haveLast")
	}
}
