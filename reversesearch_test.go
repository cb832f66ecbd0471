package readline

import "testing"

func TestReverseSearchFindsMostRecentMatch(t *testing.T) {
	h := NewHistory(10)
	h.Push("git status")
	h.Push("git commit -m fix")
	h.Push("ls")

	var r ReverseSearchState
	r.Begin("", h.Size())
	r.Append('g')
	r.Append('i')
	r.Append('t')
	r.Step(h)

	candidate, ok := r.Candidate()
	if !ok || candidate != "git commit -m fix" {
		t.Fatalf("Candidate() = %q, %v", candidate, ok)
	}
	if r.Failed() {
		t.Fatalf("expected a match, got failed")
	}
}

func TestReverseSearchStepsToOlderMatch(t *testing.T) {
	h := NewHistory(10)
	h.Push("git status")
	h.Push("ls")
	h.Push("git log")

	var r ReverseSearchState
	r.Begin("", h.Size())
	for _, c := range "git" {
		r.Append(c)
	}
	r.Step(h)
	first, _ := r.Candidate()
	if first != "git log" {
		t.Fatalf("first match = %q", first)
	}

	r.SetDirection(DirectionBack)
	r.Step(h)
	second, ok := r.Candidate()
	if !ok || second != "git status" {
		t.Fatalf("second match = %q, %v", second, ok)
	}
}

func TestReverseSearchNoMatchFails(t *testing.T) {
	h := NewHistory(10)
	h.Push("ls")

	var r ReverseSearchState
	r.Begin("", h.Size())
	r.Append('z')
	r.Append('z')
	r.Append('z')
	r.Step(h)

	if !r.Failed() {
		t.Fatalf("expected failed state for no match")
	}
	if _, ok := r.Candidate(); ok {
		t.Fatalf("expected no candidate")
	}
}

func TestReverseSearchBackspaceRescans(t *testing.T) {
	h := NewHistory(10)
	h.Push("abc")
	h.Push("abd")

	var r ReverseSearchState
	r.Begin("", h.Size())
	r.Append('a')
	r.Append('b')
	r.Append('d')
	r.Step(h)
	if c, ok := r.Candidate(); !ok || c != "abd" {
		t.Fatalf("pre-backspace candidate = %q, %v", c, ok)
	}

	r.Backspace()
	r.Step(h)
	if c, ok := r.Candidate(); !ok || c != "abd" {
		t.Fatalf("post-backspace candidate = %q, %v", c, ok)
	}
	if r.Query() != "ab" {
		t.Fatalf("query after backspace = %q", r.Query())
	}
}

func TestReverseSearchPromptRendersFailedMarker(t *testing.T) {
	var r ReverseSearchState
	r.Begin("", 0)
	r.Append('x')
	r.Step(&History{})

	prompt := r.Prompt()
	want := "(failed reverse-i-search`x'): "
	if prompt != want {
		t.Fatalf("Prompt() = %q, want %q", prompt, want)
	}
}

func TestLiteralOffsetsIsNotRegex(t *testing.T) {
	offsets := literalOffsets("a.b.c", ".")
	if len(offsets) != 2 || offsets[0] != 1 || offsets[1] != 3 {
		t.Fatalf("literalOffsets treated '.' as regex: %v", offsets)
	}
}
