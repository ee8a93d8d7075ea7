package bot

import (
	"strings"
	"testing"
)

func TestValidCityName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "Hyderabad", true},
		{"with space", "New Delhi", true},
		{"with hyphen", "Port-au-Prince", true},
		{"unicode letters", "Zürich", true},
		{"surrounding whitespace", "  Guntur  ", true},
		{"digits", "Xyzzzz123", false},
		{"punctuation", "Delhi!", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("a", 81), false},
		{"injection-ish", "a;DROP TABLE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validCityName(tt.input); got != tt.want {
				t.Errorf("validCityName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
