package cart

import (
	"encoding/json"
	"testing"
)

func TestParseQuantityAdd(t *testing.T) {
	// Add semantics: default 1, floor 1.
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"number", `3`, 3},
		{"numeric string", `"4"`, 4},
		{"float truncates", `2.9`, 2},
		{"zero becomes one", `0`, 1},
		{"negative becomes one", `-5`, 1},
		{"garbage becomes one", `"lots"`, 1},
		{"absent becomes one", ``, 1},
		{"null becomes one", `null`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseQuantity(json.RawMessage(tt.raw), 1, 1); got != tt.want {
				t.Fatalf("parseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseQuantityUpdate(t *testing.T) {
	// Update semantics: floor 0, and 0 means delete.
	tests := []struct {
		raw  string
		want int
	}{
		{`0`, 0},
		{`"0"`, 0},
		{`-1`, 0},
		{`5`, 5},
		{``, 0},
	}

	for _, tt := range tests {
		if got := parseQuantity(json.RawMessage(tt.raw), 0, 0); got != tt.want {
			t.Fatalf("parseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
