// scanner.go implements the token scanner/expander: a recursive-descent
// parser for [name(args)] sequences embedded in arbitrary text.
//
// Recognized forms:
//   - [name] - token with no arguments
//   - [name(a, b)] - positional arguments
//   - [name(key=value)] - named arguments
//   - [outer([inner])] - nested token in value position; the inner
//     resolution is pushed back into the stream and re-lexed
//   - [outer([*inner])] - as above, but the resolution is wrapped in
//     double quotes so it lexes as a single string argument
//
// Parsing a candidate is all-or-nothing: when any expected separator or
// terminator is missing, the consumed source is re-emitted verbatim and
// no substitution occurs. A resolver answering Found=false takes the same
// literal-passthrough path. Attribute-value scanning recognizes every
// form except [*.
package filter

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

type scanner struct {
	f    *Filter
	page string
	doc  *html.Node
	attr bool // scanning an attribute value: no edit wrapping, strip tags
	r    *reader
}

// scan expands every resolvable token in text and returns the result.
func (s *scanner) scan(text string) string {
	s.r = newReader(text)
	var out strings.Builder
	for {
		c := s.r.next()
		if c == eof {
			break
		}
		if c == '[' {
			out.WriteString(s.scanToken())
			continue
		}
		out.WriteRune(c)
	}
	return out.String()
}

// tokenParser tracks the source consumed for one [...] candidate so a
// failed parse can reproduce it verbatim. Replacement text re-injected by
// a nested resolution is excluded: raw holds original input only. The
// leading '[' is not part of raw.
type tokenParser struct {
	s   *scanner
	raw []rune
}

func (p *tokenParser) getc() rune {
	c := p.s.r.next()
	if c != eof && !p.s.r.lastInj {
		p.raw = append(p.raw, c)
	}
	return c
}

func (p *tokenParser) ungetc(c rune) {
	if c == eof {
		return
	}
	if !p.s.r.lastInj {
		p.raw = p.raw[:len(p.raw)-1]
	}
	p.s.r.unget(c)
}

// literal is the verbatim passthrough for a failed candidate. Replacement
// text still pending from a nested resolution is abandoned with it.
func (p *tokenParser) literal() string {
	p.s.r.dropInjected()
	return "[" + string(p.raw)
}

// scanToken is called with the opening '[' already consumed. It returns
// the text to substitute for the candidate: the resolution (possibly
// wrapped for edit mode) on success, the raw source otherwise.
func (s *scanner) scanToken() string {
	p := &tokenParser{s: s}

	tok, ok := p.parseToken()
	if !ok {
		return p.literal()
	}

	res := s.f.resolvers.Resolve(s.page, s.doc, tok)
	if !res.Found {
		return p.literal()
	}

	if s.attr {
		// Tags have no business inside an attribute value.
		if strings.ContainsRune(res.Replacement, '<') {
			return stripTags(res.Replacement)
		}
		return res.Replacement
	}

	if s.f.edit {
		// raw still ends with the closing ']'; the token attribute
		// carries the un-bracketed source.
		source := strings.TrimSuffix(string(p.raw), "]")
		elem := "span"
		if tag := firstTag(res.Replacement); tag != "" && !s.f.isInline(tag) {
			elem = "div"
		}
		return "<" + elem + ` class="filter-token" token="` +
			EncodeEntities(source) + `">` + res.Replacement + "</" + elem + ">"
	}

	return res.Replacement
}

// parseToken parses name and optional argument list up to and including
// the closing ']'. The opening '[' is already consumed.
func (p *tokenParser) parseToken() (*Token, bool) {
	name, ok := p.parseName()
	if !ok {
		return nil, false
	}
	tok := &Token{Name: name}

	p.skipSpace()
	c := p.getc()
	if c == '(' {
		if !p.parseArgs(tok) {
			return nil, false
		}
		p.skipSpace()
		c = p.getc()
	}
	if c != ']' {
		p.ungetc(c)
		return nil, false
	}
	return tok, true
}

// parseName parses an identifier: a letter followed by letters, digits,
// '_' or ':'. A dash is rejected with a warning; token names must use
// underscores instead of dashes.
func (p *tokenParser) parseName() (string, bool) {
	c := p.getc()
	if !isLetter(c) {
		p.ungetc(c)
		return "", false
	}
	var name []rune
	for {
		name = append(name, c)
		c = p.getc()
		if c == '-' {
			p.s.f.log.Warn("dash in token name, use underscores instead",
				zap.String("name", string(name)))
			p.ungetc(c)
			return "", false
		}
		if !isNameChar(c) {
			p.ungetc(c)
			return string(name), true
		}
	}
}

// parseArgs parses the argument list after '(' up to and including ')'.
func (p *tokenParser) parseArgs(tok *Token) bool {
	p.skipSpace()
	c := p.getc()
	if c == ')' {
		return true
	}
	p.ungetc(c)

	for {
		param, ok := p.parseArg()
		if !ok {
			return false
		}
		tok.Params = append(tok.Params, param)

		p.skipSpace()
		switch c := p.getc(); c {
		case ',':
			p.skipSpace()
		case ')':
			return true
		default:
			p.ungetc(c)
			return false
		}
	}
}

// parseArg parses one argument: an optional name= prefix and a value.
func (p *tokenParser) parseArg() (Param, bool) {
	c := p.getc()

	// A leading identifier is either a named parameter or a bare
	// identifier value, decided by whether '=' follows.
	if isLetter(c) {
		p.ungetc(c)
		ident, ok := p.parseName()
		if !ok {
			return Param{}, false
		}
		p.skipSpace()
		c = p.getc()
		if c != '=' {
			p.ungetc(c)
			return Param{Type: ParamIdentifier, Value: ident}, true
		}
		p.skipSpace()
		param, ok := p.parseValue()
		if !ok {
			return Param{}, false
		}
		param.Name = ident
		return param, true
	}

	p.ungetc(c)
	return p.parseValue()
}

// parseValue parses a string, number, identifier or nested token. A
// nested token is resolved on the spot and its replacement pushed back
// into the stream, so the value lexes from the resolution text.
func (p *tokenParser) parseValue() (Param, bool) {
	c := p.getc()
	switch {
	case c == '"' || c == '\'':
		return p.parseString(c)
	case isDigit(c) || c == '.':
		p.ungetc(c)
		return p.parseNumber()
	case isLetter(c):
		p.ungetc(c)
		ident, ok := p.parseName()
		if !ok {
			return Param{}, false
		}
		return Param{Type: ParamIdentifier, Value: ident}, true
	case c == '[':
		if !p.expandNested() {
			return Param{}, false
		}
		return p.parseValue()
	default:
		p.ungetc(c)
		return Param{}, false
	}
}

// expandNested parses a nested token in value position, resolves it, and
// pushes the replacement back so the caller re-lexes it as input. The
// '[*' form wraps the replacement in double quotes (escaping embedded
// quotes and backslashes) so it reads as a single string argument.
func (p *tokenParser) expandNested() bool {
	quoted := false
	c := p.getc()
	switch {
	case c != '*':
		p.ungetc(c)
	case p.s.attr:
		// the quoted-nested form exists for body text; inside an
		// attribute value it fails the candidate
		return false
	default:
		quoted = true
	}

	tok, ok := p.parseToken()
	if !ok {
		return false
	}
	res := p.s.f.resolvers.Resolve(p.s.page, p.s.doc, tok)
	if !res.Found {
		// Unknown nested token fails the whole candidate; the consumed
		// source is reproduced verbatim by the caller.
		return false
	}

	replacement := res.Replacement
	if quoted {
		replacement = `"` + quoteEscaper.Replace(replacement) + `"`
	}
	p.s.r.ungets(replacement)
	return true
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// parseString parses a quoted value. quote is the opening quote, already
// consumed. A backslash escapes any following character, including the
// quote itself.
func (p *tokenParser) parseString(quote rune) (Param, bool) {
	var value []rune
	for {
		c := p.getc()
		switch c {
		case eof:
			return Param{}, false
		case quote:
			return Param{Type: ParamString, Value: string(value)}, true
		case '\\':
			c = p.getc()
			if c == eof {
				return Param{}, false
			}
			value = append(value, c)
		default:
			value = append(value, c)
		}
	}
}

// parseNumber parses digits with an optional decimal point. The literal
// text is preserved; the type tag distinguishes integer from real.
func (p *tokenParser) parseNumber() (Param, bool) {
	var value []rune
	c := p.getc()
	for isDigit(c) {
		value = append(value, c)
		c = p.getc()
	}
	if c != '.' {
		p.ungetc(c)
		if len(value) == 0 {
			return Param{}, false
		}
		return Param{Type: ParamInteger, Value: string(value)}, true
	}
	value = append(value, c)
	c = p.getc()
	for isDigit(c) {
		value = append(value, c)
		c = p.getc()
	}
	p.ungetc(c)
	if len(value) == 1 {
		// A lone '.' is not a number.
		return Param{}, false
	}
	return Param{Type: ParamReal, Value: string(value)}, true
}

func (p *tokenParser) skipSpace() {
	for {
		c := p.getc()
		if !isSpace(c) {
			p.ungetc(c)
			return
		}
	}
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isNameChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == ':'
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
