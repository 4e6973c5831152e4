package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fpang/polylingo/internal/language"
	"github.com/fpang/polylingo/internal/pipeline"
)

// FormatElapsed renders a duration as milliseconds below one second and
// as seconds with one decimal above.
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// LanguageLabel renders "Spanish (es)", or just the code when unknown.
func LanguageLabel(code string) string {
	if language.IsAuto(code) {
		return "auto-detect"
	}
	name := language.Name(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// PrintSummary writes a human-readable scan result.
func PrintSummary(w io.Writer, source string, s pipeline.Summary, elapsed time.Duration) {
	fmt.Fprintf(w, "== %s (%s)\n", source, FormatElapsed(elapsed))
	if !s.Success {
		fmt.Fprintf(w, "   failed at %s: %s\n\n", s.Stage, s.Error)
		return
	}
	fmt.Fprintf(w, "   confidence: %.1f%%", s.Confidence)
	if len(s.Words) > 0 {
		fmt.Fprintf(w, ", %d words", len(s.Words))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "-- extracted\n%s\n", indent(s.ExtractedText))
	fmt.Fprintf(w, "-- translated")
	if s.Fallback {
		fmt.Fprintf(w, " (fallback: translation service unavailable)")
	}
	fmt.Fprintf(w, "\n%s\n\n", indent(s.TranslatedText))
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "   " + l
	}
	return strings.Join(lines, "\n")
}
