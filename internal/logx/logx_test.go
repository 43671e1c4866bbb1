package logx

import "testing"

func TestRedact(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"   ":       "",
		"hunter2":   "****",
		"sv=2024&s": "****",
	}
	for in, want := range cases {
		if got := Redact(in); got != want {
			t.Errorf("Redact(%q) = %q, want %q", in, got, want)
		}
	}
}
