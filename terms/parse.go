package terms

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports malformed text at a byte offset of the input.
type ParseError struct {
	Offset int
	Err    error
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("terms: offset %d: %v", p.Offset, p.Err)
}

func (p *ParseError) Unwrap() error {
	return p.Err
}

type frameKind uint8

const (
	frameAppl frameKind = iota + 1
	frameList
	framePlaceholder
)

type parseFrame struct {
	kind   frameKind
	name   string
	quoted bool
	// index of the first child in parser.values
	base   int
	offset int
}

func (f *parseFrame) closer() byte {
	switch f.kind {
	case frameAppl:
		return ')'
	case frameList:
		return ']'
	}
	return '>'
}

type parser struct {
	engine *Engine
	src    string
	pos    int
	values *Vector
	frames []parseFrame
}

// Parse reads one term in the form written by Fprint. Unquoted names start with a letter or underscore and
// continue with letters, digits, underscores, dashes and apostrophes; other names must be quoted. Whitespace
// between tokens is ignored. The unquoted name NaN reads as an application, not a real.
func Parse(e *Engine, r io.Reader) (Term, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Term{}, err
	}
	return ParseString(e, string(data))
}

func ParseString(e *Engine, src string) (Term, error) {
	p := &parser{
		engine: e,
		src:    src,
		values: e.NewVector(),
	}
	defer p.values.Release()
	if err := p.parse(); err != nil {
		return Term{}, err
	}
	return p.values.Get(0), nil
}

func (p *parser) fail(offset int, format string, args ...any) error {
	return &ParseError{
		Offset: offset,
		Err:    fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)),
	}
}

func (p *parser) parse() error {
	for {
		if err := p.term(); err != nil {
			return err
		}

	closing:
		for {
			p.skipSpace()
			if len(p.frames) == 0 {
				if p.pos < len(p.src) {
					return p.fail(p.pos, "trailing input %q", p.src[p.pos])
				}
				return nil
			}
			f := &p.frames[len(p.frames)-1]
			c, ok := p.peek()
			if !ok {
				return p.fail(p.pos, "unexpected end of input, %q opened at offset %d is not closed", f.closer(), f.offset)
			}
			switch {
			case c == f.closer():
				p.pos++
				p.closeFrame()
			case c == ',' && f.kind != framePlaceholder:
				p.pos++
				break closing
			default:
				return p.fail(p.pos, "unexpected %q, want %q", c, f.closer())
			}
		}
	}
}

// term reads up to the next complete leaf, opening frames for the compound terms on the way.
func (p *parser) term() error {
	for {
		p.skipSpace()
		start := p.pos
		c, ok := p.peek()
		if !ok {
			return p.fail(start, "unexpected end of input")
		}

		switch {
		case c == '[':
			p.pos++
			p.skipSpace()
			if p.consume(']') {
				p.values.Push(p.engine.EmptyList())
				return nil
			}
			p.open(frameList, "", false, start)

		case c == '<':
			p.pos++
			p.open(framePlaceholder, "", false, start)

		case c == '#':
			return p.blob()

		case c == '"':
			prefix, err := strconv.QuotedPrefix(p.src[p.pos:])
			if err != nil {
				return p.fail(start, "unterminated quoted name")
			}
			name, err := strconv.Unquote(prefix)
			if err != nil {
				return p.fail(start, "bad quoted name: %v", err)
			}
			p.pos += len(prefix)
			if !p.appl(name, true, start) {
				return nil
			}

		case c == '-' || c == '+' || isDigit(c):
			return p.number()

		case isNameStart(c):
			for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
				p.pos++
			}
			if !p.appl(p.src[start:p.pos], false, start) {
				return nil
			}

		default:
			return p.fail(start, "unexpected %q", c)
		}
	}
}

// appl pushes a constant or opens an application frame, reporting whether a frame was opened.
func (p *parser) appl(name string, quoted bool, start int) bool {
	p.skipSpace()
	if p.consume('(') {
		p.skipSpace()
		if !p.consume(')') {
			p.open(frameAppl, name, quoted, start)
			return true
		}
	}
	e := p.engine
	p.values.Push(e.Appl(e.Symbol(name, 0, quoted)))
	return false
}

func (p *parser) open(kind frameKind, name string, quoted bool, start int) {
	p.frames = append(p.frames, parseFrame{
		kind:   kind,
		name:   name,
		quoted: quoted,
		base:   p.values.Len(),
		offset: start,
	})
}

func (p *parser) closeFrame() {
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	children := make([]Term, p.values.Len()-f.base)
	for i := range children {
		children[i] = p.values.Get(f.base + i)
	}

	e := p.engine
	var t Term
	switch f.kind {
	case frameAppl:
		t = e.Appl(e.Symbol(f.name, len(children), f.quoted), children...)
	case frameList:
		t = e.List(children...)
	case framePlaceholder:
		t = e.Placeholder(children[0])
	}
	p.values.Truncate(f.base)
	p.values.Push(t)
}

func (p *parser) number() error {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	isReal := false
	if strings.HasPrefix(p.src[p.pos:], "Inf") {
		p.pos += len("Inf")
		isReal = true
	} else {
		digits := p.digits()
		if p.consume('.') {
			isReal = true
			digits += p.digits()
		}
		if digits == 0 {
			return p.fail(start, "bad number")
		}
		if c, ok := p.peek(); ok && (c == 'e' || c == 'E') {
			p.pos++
			isReal = true
			if c, ok := p.peek(); ok && (c == '-' || c == '+') {
				p.pos++
			}
			if p.digits() == 0 {
				return p.fail(start, "bad exponent")
			}
		}
	}

	text := p.src[start:p.pos]
	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return p.fail(start, "bad real %s", text)
		}
		p.values.Push(p.engine.Real(v))
		return nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return p.fail(start, "bad integer %s", text)
	}
	p.values.Push(p.engine.Int(v))
	return nil
}

func (p *parser) blob() error {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && isHex(p.src[p.pos]) {
		p.pos++
	}
	data, err := hex.DecodeString(p.src[start+1 : p.pos])
	if err != nil {
		return p.fail(start, "bad blob: %v", err)
	}
	p.values.Push(p.engine.Blob(data))
	return nil
}

func (p *parser) digits() int {
	n := 0
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
		n++
	}
	return n
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-' || c == '\''
}
