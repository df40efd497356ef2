package dialog

import "testing"

func TestFiltersPutDefaultFirst(t *testing.T) {
	tests := []struct {
		name  string
		first string
	}{
		{"sigil.png", "PNG Image"},
		{"sigil.gif", "GIF Image"},
		{"SIGIL.SVG", "SVG Drawing"},
		{"sigil", "PNG Image"},
	}
	for _, tt := range tests {
		f := Filters(tt.name)
		if f[0].Name != tt.first {
			t.Errorf("%s: first filter %q, want %q", tt.name, f[0].Name, tt.first)
		}
		if len(f) != 7 {
			t.Errorf("%s: %d filters", tt.name, len(f))
		}
	}
}
