package provider

import (
	"bytes"
	"strings"
)

// Extract pulls the first string value for key out of a raw JSON body without
// a general parser. It scans for the literal pattern "<key>":" and walks
// forward tracking a one-byte escape flag until the closing quote. A missing
// pattern or an unterminated value yields ok=false — the normal
// "field not present" case, distinct from transport failure.
//
// Known limitation: a key of the same name appearing earlier in the body
// (e.g. inside metadata) wins. Provider response envelopes are fixtured in
// extract_test.go to keep that trade-off honest.
func Extract(body []byte, key string) (value string, ok bool) {
	pattern := []byte(`"` + key + `":"`)
	idx := bytes.Index(body, pattern)
	if idx < 0 {
		return "", false
	}

	start := idx + len(pattern)
	escaped := false
	for i := start; i < len(body); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch body[i] {
		case '\\':
			escaped = true
		case '"':
			return unescapeShort(string(body[start:i])), true
		}
	}
	return "", false
}

// CollapseLine flattens an extracted value into a single shell line: all
// newlines and carriage returns removed, trailing spaces and tabs trimmed.
// Applied only in legacy command mode; plan JSON is passed through untouched.
func CollapseLine(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimRight(s, " \t")
}
