package translate

import "strings"

var unescapeQuotes = strings.NewReplacer(`\"`, `"`, `\'`, `'`)

// CleanCompletion normalizes raw model output: trims surrounding whitespace,
// strips exactly one layer of matching wrapping quotes (double or single),
// then unescapes any backslash-escaped quotes left in the text.
func CleanCompletion(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return unescapeQuotes.Replace(s)
}
