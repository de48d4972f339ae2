package termtext

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "newlines flattened", input: "a\nb\r\nc", want: "a b  c"},
		{name: "ANSI codes stripped", input: "\x1b[32mgreen\x1b[0m", want: "green"},
		{name: "OSC sequence stripped", input: "\x1b]0;title\x07text", want: "text"},
		{name: "control chars removed", input: "hello\x00\x01\x02world", want: "helloworld"},
		{name: "log padding kept", input: "[INFO] KONSUMENT 1   ] ok  ", want: "[INFO] KONSUMENT 1   ] ok"},
		{name: "polish text kept", input: "postęp: 3/6", want: "postęp: 3/6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.input); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
