package ses

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "OrderService", "OrderService"},
		{"keeps underscore and hyphen", "order_service-v2", "order_service-v2"},
		{"empty", "", "Generated"},
		{"blank", "   \t\n  ", "Generated"},
		{"inner spaces collapse", "Order  Service", "Order_Service"},
		{"mixed whitespace run", "a \t\n b", "a_b"},
		{"surrounding whitespace trimmed", "  Alpha  ", "Alpha"},
		{"special characters", "cache (v2)", "cache__v2_"},
		{"unicode replaced", "caché", "cach_"},
		{"leading digit", "2ndStage", "_2ndStage"},
		{"only digits", "42", "_42"},
		{"digit after trim", " 7up", "_7up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.input); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTokenIdempotent(t *testing.T) {
	inputs := []string{"", "  spaced out  ", "2fast", "weird!@#chars", "fine_token"}
	for _, in := range inputs {
		once := SanitizeToken(in)
		twice := SanitizeToken(once)
		if once != twice {
			t.Errorf("SanitizeToken not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestSanitizeTokenNeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "\t", "!!!", "???"}
	for _, in := range inputs {
		got := SanitizeToken(in)
		if got == "" {
			t.Errorf("SanitizeToken(%q) returned empty string", in)
		}
		if got[0] >= '0' && got[0] <= '9' {
			t.Errorf("SanitizeToken(%q) = %q starts with a digit", in, got)
		}
	}
}
