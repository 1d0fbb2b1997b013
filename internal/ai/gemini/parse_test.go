package gemini

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "fenced", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fenced without language", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding whitespace", in: "  \n{\"a\": 1}\n  ", want: `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoerceScore(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{name: "float whole", in: float64(7), want: 7, ok: true},
		{name: "string number", in: "8", want: 8, ok: true},
		{name: "fractional", in: 7.5, ok: false},
		{name: "non numeric string", in: "high", ok: false},
		{name: "nil", in: nil, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerceScore(tc.in)
			if ok != tc.ok {
				t.Fatalf("coerceScore(%v) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if tc.ok && got != tc.want {
				t.Fatalf("coerceScore(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	if !coerceBool(true) || coerceBool(false) {
		t.Fatalf("bool passthrough broken")
	}
	if !coerceBool("True") || !coerceBool("yes") || coerceBool("no") {
		t.Fatalf("string coercion broken")
	}
	if !coerceBool(float64(1)) || coerceBool(float64(0)) {
		t.Fatalf("numeric coercion broken")
	}
	if coerceBool(nil) {
		t.Fatalf("nil should coerce to false")
	}
}
