package plaintext

// CharLength reports how many bytes the UTF-8 sequence led by b occupies.
// Continuation bytes and other invalid leads count as 1 so that walks over
// malformed text always make progress.
func CharLength(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// ByteOffset returns the byte offset of the character at charIndex in s.
// Indices past the last character yield len(s).
func ByteOffset(s string, charIndex int) int {
	off := 0
	for n := 0; n < charIndex && off < len(s); n++ {
		off += CharLength(s[off])
	}
	if off > len(s) {
		off = len(s)
	}
	return off
}

// CharCount counts the characters of s the same way ByteOffset walks them.
func CharCount(s string) int {
	n := 0
	for off := 0; off < len(s); n++ {
		off += CharLength(s[off])
	}
	return n
}

// Slice returns the characters [start, end) of s. Out of range bounds are
// clamped; an empty or inverted range gives "".
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return s[ByteOffset(s, start):ByteOffset(s, end)]
}
