package translate

import "testing"

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source string
		target string
		want   string
	}{
		{
			name:   "auto source",
			text:   "Hello",
			source: "auto",
			target: "es",
			want:   "Translate the following text to Spanish:\n\n\"Hello\"",
		},
		{
			name:   "absent source uses auto phrasing",
			text:   "Hello",
			source: "",
			target: "fr",
			want:   "Translate the following text to French:\n\n\"Hello\"",
		},
		{
			name:   "known source",
			text:   "Hola",
			source: "es",
			target: "en",
			want:   "Translate the following Spanish text to English:\n\n\"Hola\"",
		},
		{
			name:   "unknown codes pass through verbatim",
			text:   "Qapla'",
			source: "tlh",
			target: "Elvish",
			want:   "Translate the following tlh text to Elvish:\n\n\"Qapla'\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPrompt(tt.text, tt.source, tt.target); got != tt.want {
				t.Errorf("BuildPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}
