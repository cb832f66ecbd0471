package readline

import "testing"

func TestHistoryPushDedupAndOverflow(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("a")
	if h.Size() != 1 {
		t.Fatalf("expected dedup, size=%d", h.Size())
	}
	h.Push("b")
	h.Push("c")
	if h.Size() != 2 {
		t.Fatalf("expected overflow eviction, size=%d", h.Size())
	}
	first, _ := h.At(0)
	if first != "b" {
		t.Fatalf("expected oldest entry evicted, At(0)=%q", first)
	}
}

func TestHistoryPushIgnoresEmpty(t *testing.T) {
	h := NewHistory(10)
	h.Push("")
	if h.Size() != 0 {
		t.Fatalf("expected empty line ignored, size=%d", h.Size())
	}
}

func TestHistoryNavigatePrevNext(t *testing.T) {
	h := NewHistory(10)
	h.Push("one")
	h.Push("two")

	line, ok := h.NavigatePrev("typing")
	if !ok || line != "two" {
		t.Fatalf("NavigatePrev #1 = %q, %v", line, ok)
	}
	line, ok = h.NavigatePrev("typing")
	if !ok || line != "one" {
		t.Fatalf("NavigatePrev #2 = %q, %v", line, ok)
	}
	_, ok = h.NavigatePrev("typing")
	if ok {
		t.Fatalf("expected NavigatePrev at oldest to fail")
	}

	line, ok = h.NavigateNext("one")
	if !ok || line != "two" {
		t.Fatalf("NavigateNext #1 = %q, %v", line, ok)
	}
	line, ok = h.NavigateNext("two")
	if !ok || line != "typing" {
		t.Fatalf("NavigateNext restore = %q, %v", line, ok)
	}
}

func TestHistoryNavigateEmptyBells(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.NavigatePrev("x"); ok {
		t.Fatalf("expected NavigatePrev to fail on empty history")
	}
}

func TestHistoryFirstLast(t *testing.T) {
	h := NewHistory(10)
	h.Push("one")
	h.Push("two")
	h.Push("three")

	line, ok := h.NavigateFirst("typing")
	if !ok || line != "one" {
		t.Fatalf("NavigateFirst = %q, %v", line, ok)
	}
	line, ok = h.NavigateLast("one")
	if !ok || line != "typing" {
		t.Fatalf("NavigateLast = %q, %v", line, ok)
	}
}

func TestHistoryResetNavigation(t *testing.T) {
	h := NewHistory(10)
	h.Push("one")
	h.NavigatePrev("typing")
	h.ResetNavigation()
	if h.Cursor() != -1 {
		t.Fatalf("expected cursor reset to -1, got %d", h.Cursor())
	}
}

func TestHistorySetCursorForCommit(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")
	h.SetCursor(0)
	if h.Cursor() != 0 {
		t.Fatalf("SetCursor did not take effect, cursor=%d", h.Cursor())
	}
}

func TestHistorySetMaxSizeEvicts(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	h.SetMaxSize(1)
	if h.Size() != 1 {
		t.Fatalf("expected shrink to evict, size=%d", h.Size())
	}
	last, _ := h.At(0)
	if last != "c" {
		t.Fatalf("expected newest entry kept, At(0)=%q", last)
	}
}

func TestHistoryPrepareEntry(t *testing.T) {
	h := NewHistory(10)
	h.SetPrepareEntry(func(s string) string { return "<" + s + ">" })
	h.Push("x")
	got, _ := h.At(0)
	if got != "<x>" {
		t.Fatalf("prepareEntry not applied, got %q", got)
	}
}
