package runtime

// SchemeString is the heap payload of a mutable character buffer (§4.2's
// string kind). Scheme strings are mutable in place via `string-set!`, so
// unlike Go's immutable string this wraps a []rune that callers index and
// assign into directly.
type SchemeString struct {
	Chars []rune
}

// Trace reports no referenced Values; strings are atomic.
func (s *SchemeString) Trace(func(Value)) {}

// NewString allocates a mutable string from its initial contents.
func (a *Arena) NewString(s string) Value {
	return a.alloc(KindString, &SchemeString{Chars: []rune(s)})
}

// NewStringOfLength allocates a mutable string of n characters, all filled.
func (a *Arena) NewStringOfLength(n int, fill rune) Value {
	chars := make([]rune, n)
	for i := range chars {
		chars[i] = fill
	}
	return a.alloc(KindString, &SchemeString{Chars: chars})
}

// schemeString resolves a KindString Value to its payload.
func (a *Arena) schemeString(v Value) *SchemeString {
	e := a.lookup(v)
	if e == nil {
		return nil
	}
	s, _ := e.Obj.(*SchemeString)
	return s
}

// String returns the Go string form of a Scheme string, for printing and
// for equal?.
func (a *Arena) String(v Value) string {
	s := a.schemeString(v)
	if s == nil {
		return ""
	}
	return string(s.Chars)
}

// StringLen returns the character count of a Scheme string.
func (a *Arena) StringLen(v Value) int {
	s := a.schemeString(v)
	if s == nil {
		return 0
	}
	return len(s.Chars)
}

// StringRef returns the character at index i.
func (a *Arena) StringRef(v Value, i int) (rune, error) {
	s := a.schemeString(v)
	if s == nil || i < 0 || i >= len(s.Chars) {
		return 0, NewRangeError("string-ref: index %d out of range", i)
	}
	return s.Chars[i], nil
}

// StringSet mutates the character at index i in place.
func (a *Arena) StringSet(v Value, i int, c rune) error {
	s := a.schemeString(v)
	if s == nil || i < 0 || i >= len(s.Chars) {
		return NewRangeError("string-set!: index %d out of range", i)
	}
	s.Chars[i] = c
	return nil
}

// StringAppend concatenates any number of strings into a fresh one.
func (a *Arena) StringAppend(parts ...Value) Value {
	var out []rune
	for _, p := range parts {
		if s := a.schemeString(p); s != nil {
			out = append(out, s.Chars...)
		}
	}
	return a.alloc(KindString, &SchemeString{Chars: out})
}

// SubString returns a fresh copy of the half-open character range [start,end).
func (a *Arena) SubString(v Value, start, end int) (Value, error) {
	s := a.schemeString(v)
	if s == nil || start < 0 || end > len(s.Chars) || start > end {
		return Undefined, NewRangeError("substring: invalid range [%d,%d)", start, end)
	}
	out := make([]rune, end-start)
	copy(out, s.Chars[start:end])
	return a.alloc(KindString, &SchemeString{Chars: out}), nil
}
