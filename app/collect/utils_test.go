package collect

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text already", "plain text already"},
		{"<div><script>alert(1)</script>visible</div>", "visible"},
		{"<style>.x{}</style>styled", "styled"},
		{"  spaced\n\nout  ", "spaced out"},
		{"", ""},
	}

	for _, test := range tests {
		result := StripHTML(test.input)
		if result != test.expected {
			t.Errorf("StripHTML(%q): expected %q, got %q", test.input, test.expected, result)
		}
	}
}
