package ingest

import "strings"

// Delimiter candidates, in priority order. Tab wins over semicolon, semicolon
// over comma; anything else falls back to tab.
const (
	DelimiterTab       = '\t'
	DelimiterSemicolon = ';'
	DelimiterComma     = ','
)

// DetectDelimiter inspects only the first line of the content and picks the
// field delimiter. It always returns a usable value.
func DetectDelimiter(content string) rune {
	firstLine := content
	if idx := strings.IndexAny(content, "\r\n"); idx >= 0 {
		firstLine = content[:idx]
	}

	switch {
	case strings.ContainsRune(firstLine, DelimiterTab):
		return DelimiterTab
	case strings.ContainsRune(firstLine, DelimiterSemicolon):
		return DelimiterSemicolon
	case strings.ContainsRune(firstLine, DelimiterComma):
		return DelimiterComma
	default:
		return DelimiterTab
	}
}
