package parser

import "strings"

// cursor walks a single chart line. Every method either consumes what it
// recognises and reports true, or leaves the position untouched.
type cursor struct {
	s string
	i int
}

func (c *cursor) rest() string {
	return c.s[c.i:]
}

func (c *cursor) lit(p string) bool {
	if strings.HasPrefix(c.rest(), p) {
		c.i += len(p)
		return true
	}
	return false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (c *cursor) space() {
	for c.i < len(c.s) && isSpace(c.s[c.i]) {
		c.i++
	}
}

// sep is a comma followed by optional whitespace
func (c *cursor) sep() bool {
	if !c.lit(",") {
		return false
	}
	c.space()
	return true
}

func (c *cursor) digits() (string, bool) {
	j := c.i
	for j < len(c.s) && isDigit(c.s[j]) {
		j++
	}
	if j == c.i {
		return "", false
	}
	d := c.s[c.i:j]
	c.i = j
	return d, true
}

// coord is a signed decimal with exactly two fractional digits
func (c *cursor) coord() (string, bool) {
	start := c.i
	c.lit("-")
	if _, ok := c.digits(); !ok {
		c.i = start
		return "", false
	}
	if !c.lit(".") {
		c.i = start
		return "", false
	}
	if c.i+2 > len(c.s) || !isDigit(c.s[c.i]) || !isDigit(c.s[c.i+1]) {
		c.i = start
		return "", false
	}
	c.i += 2
	return c.s[start:c.i], true
}

func (c *cursor) lower() (string, bool) {
	j := c.i
	for j < len(c.s) && c.s[j] >= 'a' && c.s[j] <= 'z' {
		j++
	}
	if j == c.i {
		return "", false
	}
	w := c.s[c.i:j]
	c.i = j
	return w, true
}

// token reads a non-empty field that runs up to the first comma from
// which term follows after optional whitespace. term is consumed too.
func (c *cursor) token(term string) (string, bool) {
	rest := c.rest()
	for k := 1; k < len(rest); k++ {
		if rest[k] != ',' {
			continue
		}
		j := k + 1
		for j < len(rest) && isSpace(rest[j]) {
			j++
		}
		if strings.HasPrefix(rest[j:], term) {
			c.i += j + len(term)
			return rest[:k], true
		}
	}
	return "", false
}

// bracketed returns the text between the first '[' and the last ']'
func bracketed(line string) (string, bool) {
	open := strings.IndexByte(line, '[')
	end := strings.LastIndexByte(line, ']')
	if open < 0 || end < open {
		return "", false
	}
	return line[open : end+1], true
}
