package perception

import (
	"regexp"
	"strings"
)

// fencePattern matches a whole response wrapped in a markdown code block.
var fencePattern = regexp.MustCompile("(?s)^```(?:json|JSON)?\\s*\\n?(.*?)\\s*```$")

// stripCodeFence removes a surrounding ```json fence, if any.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return text
}

// cleanIdea trims whitespace and wrapping quotes from free-text output.
func cleanIdea(text string) string {
	text = strings.TrimSpace(text)
	for len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			text = strings.TrimSpace(text[1 : len(text)-1])
			continue
		}
		break
	}
	text = strings.TrimSpace(strings.Trim(text, "“”"))
	return text
}
