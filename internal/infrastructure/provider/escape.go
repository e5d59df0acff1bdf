// Package provider implements the query-and-validate pipeline around the AI
// backends: request payload encoding, lenient response-field extraction,
// command-plan parsing, and the HTTP transport adapter. Per-provider
// differences (endpoint, body shape, headers, response field) live in a single
// dispatch table so adding a backend is a one-entry change.
package provider

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// escapeJSON encodes an arbitrary byte string as the inside of a JSON string
// literal. It never fails: every byte is classified and either copied,
// short-escaped, or \u00XX-escaped, so the output is always syntactically
// valid regardless of control characters or broken UTF-8 in the input.
//
// A byte that begins an invalid or truncated UTF-8 sequence is escaped on its
// own and scanning resumes at the next byte, so one bad byte cannot
// desynchronize the rest of the string.
func escapeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); {
		c := s[i]
		if c < 0x80 {
			switch c {
			case '\\':
				b.WriteString(`\\`)
			case '"':
				b.WriteString(`\"`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				if c < 0x20 {
					fmt.Fprintf(&b, `\u%04x`, c)
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid or truncated sequence: escape this byte only.
			fmt.Fprintf(&b, `\u%04x`, c)
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}

	return b.String()
}

// unescapeShort reverses the seven short escapes produced by escapeJSON. An
// unrecognized two-character escape passes its second byte through literally;
// a trailing lone backslash is dropped.
func unescapeShort(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
