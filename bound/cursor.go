package bound

import "strings"

// cursor is a forward-only reader over a range expression.
type cursor struct {
	s   string
	pos int
}

func newCursor(s string) *cursor { return &cursor{s: s} }

func (c *cursor) atEnd() bool { return c.pos >= len(c.s) }

func (c *cursor) peek() byte {
	if c.atEnd() {
		return 0
	}
	return c.s[c.pos]
}

func (c *cursor) advance() { c.pos++ }

// tryByte consumes ch when it is next.
func (c *cursor) tryByte(ch byte) bool {
	if !c.atEnd() && c.s[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) skipSpaces() {
	for !c.atEnd() && (c.s[c.pos] == ' ' || c.s[c.pos] == '\t') {
		c.pos++
	}
}

// readNumber reads a decimal number. ok is false when no digit is next.
func (c *cursor) readNumber() (n int, ok bool) {
	start := c.pos
	for !c.atEnd() && c.s[c.pos] >= '0' && c.s[c.pos] <= '9' {
		n = n*10 + int(c.s[c.pos]-'0')
		c.pos++
	}
	return n, c.pos > start
}

// readUntil returns the text up to the first occurrence of any byte in
// stops (or the end of input), consuming it.
func (c *cursor) readUntil(stops string) string {
	start := c.pos
	for !c.atEnd() && !strings.ContainsRune(stops, rune(c.s[c.pos])) {
		c.pos++
	}
	return c.s[start:c.pos]
}
