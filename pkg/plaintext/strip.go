// Package plaintext turns raw dialogue markup into the plain text that
// fragment records index into, and converts character indices of that text
// back to byte offsets.
package plaintext

// StripTags removes every {...} override block from raw, braces included.
//
// Blocks nest: '{' raises the depth, '}' lowers it but never below zero, so a
// stray '}' is dropped without opening anything. Bytes are copied only at
// depth zero, which also drops an unterminated block up to the end of raw.
// Line break escapes such as \N are left untouched.
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	out := make([]byte, 0, len(raw))
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out = append(out, c)
			}
		}
	}
	return string(out)
}

// Blocks returns the contents of the top-level override blocks of raw, in
// order, without their outer braces. Nested braces stay inside the content.
// An unterminated trailing block is not returned.
func Blocks(raw string) []string {
	var blocks []string
	depth, start := 0, 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				blocks = append(blocks, raw[start:i])
			}
		}
	}
	return blocks
}
