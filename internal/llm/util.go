package llm

import "strings"

// CleanJSONBlock recovers the JSON payload from an LLM response. Models wrap
// JSON in ```json fences or conversational chatter even when instructed not
// to, so after stripping fences the first balanced object or array in the
// text wins.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = stripCodeFence(text)

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if extracted := extractJSONObject(text[objIdx:]); extracted != "" {
			return extracted
		}
	case arrIdx >= 0:
		if extracted := extractJSONArray(text[arrIdx:]); extracted != "" {
			return extracted
		}
	}
	return text
}

// stripCodeFence unwraps a leading markdown fence. The opening line may
// carry a language tag like ```json; a short token without spaces or
// braces is treated as one and dropped.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := body[:nl]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// extractJSONObject returns the balanced JSON object at the start of text,
// or "" when text does not begin with one.
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced JSON array at the start of text, or
// "" when text does not begin with one.
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans for the closing delimiter matching text[0], tracking
// string state so delimiters inside quoted values do not end the scan early.
func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
