package infer

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("infer: no JSON object in completion")

// extractJSONObject returns the first balanced JSON object substring of s.
// Completion services wrap payloads in prose and markdown fences, so scanning
// for a balanced brace pair is more reliable than unmarshalling the whole
// response. String literals and escapes are honored while counting braces.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errNoJSON
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, nil
				}
				return "", errNoJSON
			}
		}
	}
	return "", errNoJSON
}
