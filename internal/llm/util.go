package llm

import "strings"

// CleanJSONBlock isolates the JSON payload in a model response. Models wrap
// JSON in ```json fences or conversational prose even when instructed not
// to; both are stripped. Input with no JSON payload passes through.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Drop preamble and trailing chatter around the first balanced payload.
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	start := objStart
	extract := extractJSONObject
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		extract = extractJSONArray
	}
	if start == -1 {
		return text
	}
	if payload := extract(text[start:]); payload != "" {
		return payload
	}
	return text
}

// extractJSONObject returns the balanced object at the start of s, or ""
// when s does not begin with one. Braces inside string literals are ignored.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray is the array counterpart of extractJSONObject.
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
