package agent

import (
	"encoding/json"
	"strings"

	"github.com/negobench/negobench/core"
)

// ParseReply normalizes raw model text into a StructuredReply. Parsing is
// a fallible operation with a first-class fallback branch, not an
// exceptional path: if neither direct parsing nor extracting the first
// top-level JSON object succeeds, the raw text becomes the message of a
// reply that carries no offer and no deal claim.
func ParseReply(raw string) core.StructuredReply {
	var reply core.StructuredReply
	if err := json.Unmarshal([]byte(raw), &reply); err == nil {
		return reply
	}

	if block := extractJSONObject(raw); block != "" {
		if err := json.Unmarshal([]byte(block), &reply); err == nil {
			return reply
		}
	}

	return core.StructuredReply{
		Thought: "Failed to parse JSON output",
		Message: raw,
		Offer:   nil,
		Deal:    false,
	}
}

// extractJSONObject pulls the first top-level {...} block from text,
// stripping common ```json code fences first. Braces are matched with a
// depth scan that skips string contents, so trailing prose containing a
// stray '}' cannot swallow the object.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
