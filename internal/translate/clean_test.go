package translate

import "testing"

func TestCleanCompletion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Bonjour", "Bonjour"},
		{"surrounding whitespace", "  Bonjour \n", "Bonjour"},
		{"double quoted", `"Bonjour"`, "Bonjour"},
		{"single quoted", `'Bonjour'`, "Bonjour"},
		{"quoted after trim", "\n \"Hola\" \t", "Hola"},
		{"only one layer stripped", `""Bonjour""`, `"Bonjour"`},
		{"mismatched quotes kept", `"Bonjour'`, `"Bonjour'`},
		{"lone quote kept", `"`, `"`},
		{"empty quotes", `""`, ""},
		{"escaped double quotes", `Il a dit \"salut\"`, `Il a dit "salut"`},
		{"escaped single quotes", `l\'homme`, "l'homme"},
		{"strip then unescape", `"Er sagte \"Hallo\""`, `Er sagte "Hallo"`},
		{"inner quotes untouched", `Say "hi" now`, `Say "hi" now`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCompletion(tt.raw); got != tt.want {
				t.Errorf("CleanCompletion(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
