package cssom

import (
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"

	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/selector"
	"github.com/tdewolff/parse/v2"
	lex "github.com/tdewolff/parse/v2/css"
)

// StyleRule is a selector together with its declarations.
// Property names are unique within a rule; if a name is declared more than
// once, the last declaration wins.
type StyleRule struct {
	Selector   selector.Selector
	Properties map[string]css.Values
}

// Value returns the values declared for a property.
func (r StyleRule) Value(name string) (css.Values, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Parse parses stylesheet text into a list of rules. Parse never fails;
// unusable rules and declarations are traced and skipped.
func Parse(text string) []StyleRule {
	p := parser{scan: newScanner(text)}
	p.stylesheet()
	tracer().Debugf("parsed %d rules", len(p.rules))
	return p.rules
}

// ParseValues tokenizes the value part of a single declaration, e.g.
// "1px auto 3%". Input after a top-level ';' or '}' is ignored.
func ParseValues(text string) css.Values {
	p := parser{scan: newScanner(text)}
	values, _ := p.values("")
	return values
}

type parser struct {
	scan  *scanner
	rules []StyleRule
}

func (p *parser) stylesheet() {
	for {
		prelude, end := p.prelude()
		switch end.tt {
		case lex.ErrorToken:
			if !blank(prelude) {
				tracer().Errorf("skipping %q at end of input: %v", join(prelude), ErrInvalidSelector)
			}
			return
		case lex.AtKeywordToken:
			tracer().Infof("skipping at-rule %s", end.text)
			p.skipAtRule()
		case lex.LeftBraceToken:
			decls, closed := p.declarations()
			if !closed {
				tracer().Infof("unterminated block for %q", strings.TrimSpace(join(prelude)))
			}
			sels, err := selectorList(prelude)
			if err != nil {
				tracer().Errorf("skipping rule %q: %v", strings.TrimSpace(join(prelude)), err)
				continue
			}
			for _, sel := range sels {
				p.rules = append(p.rules, StyleRule{Selector: sel, Properties: maps.Clone(decls)})
			}
		default: // stray '}' or ';'
			tracer().Errorf("skipping %q: %v", join(prelude)+end.text, UnexpectedTokenError{end.text})
		}
	}
}

// prelude collects the tokens up to the start of a block. The terminating
// token is returned separately. An at-keyword terminates an empty prelude.
func (p *parser) prelude() ([]lexeme, lexeme) {
	var prelude []lexeme
	for {
		l := p.scan.next()
		switch l.tt {
		case lex.ErrorToken, lex.LeftBraceToken, lex.RightBraceToken, lex.SemicolonToken:
			return prelude, l
		case lex.AtKeywordToken:
			if blank(prelude) {
				return nil, l
			}
		case lex.CDOToken, lex.CDCToken:
			continue
		}
		prelude = append(prelude, l)
	}
}

// skipAtRule skips an at-rule statement or block.
func (p *parser) skipAtRule() {
	depth := 0
	for {
		l := p.scan.next()
		switch l.tt {
		case lex.ErrorToken:
			return
		case lex.SemicolonToken:
			if depth == 0 {
				return
			}
		case lex.LeftBraceToken:
			depth++
		case lex.RightBraceToken:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// declarations parses the body of a block, up to and including the closing
// brace. closed is false if input ended before the block was closed.
func (p *parser) declarations() (props map[string]css.Values, closed bool) {
	props = make(map[string]css.Values)
	for {
		l := p.scan.next()
		switch l.tt {
		case lex.ErrorToken:
			return props, false
		case lex.RightBraceToken:
			return props, true
		case lex.WhitespaceToken, lex.SemicolonToken:
			continue
		case lex.IdentToken, lex.CustomPropertyNameToken:
			name := l.text
			if l.tt == lex.IdentToken {
				name = strings.ToLower(name)
			}
			if colon := p.scan.nextNonBlank(); colon.tt != lex.ColonToken {
				tracer().Errorf("skipping declaration %q: %v", name, UnexpectedTokenError{colon.text})
				p.scan.unread(colon)
				if p.skipDeclaration() {
					return props, true
				}
				continue
			}
			values, end := p.values(name)
			props[name] = values
			if end.tt == lex.RightBraceToken {
				return props, true
			} else if end.tt == lex.ErrorToken {
				return props, false
			}
		default:
			tracer().Errorf("skipping declaration: %v", UnexpectedTokenError{l.text})
			if p.skipDeclaration() {
				return props, true
			}
		}
	}
}

// values collects the value tokens of a declaration. Tokens nested within
// functions or brackets are skipped, as are tokens without a representation
// as a property value token.
func (p *parser) values(name string) (css.Values, lexeme) {
	values := make(css.Values, 0, 4)
	depth := 0
	for {
		l := p.scan.next()
		switch l.tt {
		case lex.ErrorToken:
			return values, l
		case lex.SemicolonToken:
			if depth == 0 {
				return values, l
			}
		case lex.RightBraceToken:
			if depth == 0 {
				return values, l
			}
			depth--
		case lex.FunctionToken, lex.LeftParenthesisToken, lex.LeftBracketToken, lex.LeftBraceToken:
			depth++
		case lex.RightParenthesisToken, lex.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case lex.DelimToken:
			if depth > 0 || l.text != "!" {
				continue
			}
			imp := p.scan.nextNonBlank()
			if imp.tt == lex.IdentToken && strings.EqualFold(imp.text, "important") {
				tracer().Debugf("%s: ignoring !important", name)
				continue
			}
			p.scan.unread(imp)
		default:
			if depth > 0 {
				continue
			}
			if t, ok := toValueToken(l); ok {
				values = append(values, t)
			}
		}
	}
}

// skipDeclaration skips to the end of the current declaration. It returns
// true if the enclosing block has been closed (or input has ended).
func (p *parser) skipDeclaration() bool {
	depth := 0
	for {
		l := p.scan.next()
		switch l.tt {
		case lex.ErrorToken:
			return true
		case lex.SemicolonToken:
			if depth == 0 {
				return false
			}
		case lex.FunctionToken, lex.LeftParenthesisToken, lex.LeftBracketToken, lex.LeftBraceToken:
			depth++
		case lex.RightParenthesisToken, lex.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case lex.RightBraceToken:
			if depth == 0 {
				return true
			}
			depth--
		}
	}
}

// --- Selectors -------------------------------------------------------------

// selectorList compiles a comma separated list of selectors. An error in
// any of them invalidates the whole list.
func selectorList(prelude []lexeme) ([]selector.Selector, error) {
	var sels []selector.Selector
	start := 0
	for i := 0; i <= len(prelude); i++ {
		if i < len(prelude) && prelude[i].tt != lex.CommaToken {
			continue
		}
		sel, err := compileSelector(prelude[start:i])
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
		start = i + 1
	}
	return sels, nil
}

func compileSelector(toks []lexeme) (selector.Selector, error) {
	els := make([]selector.Element, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.tt {
		case lex.WhitespaceToken:
			els = append(els, selector.Child())
		case lex.IdentToken:
			els = append(els, selector.Component(t.text))
		case lex.HashToken:
			els = append(els, selector.Name(t.text[1:]))
		case lex.ColonToken:
			if i++; i == len(toks) {
				return selector.Selector{}, fmt.Errorf("%w: dangling ':'", ErrInvalidSelector)
			}
			switch toks[i].tt {
			case lex.IdentToken:
				els = append(els, selector.PseudoClass(toks[i].text))
			case lex.ColonToken, lex.FunctionToken:
				return selector.Selector{}, fmt.Errorf("%w: %q", ErrUnsupportedSelector, ":"+toks[i].text)
			default:
				return selector.Selector{}, UnexpectedTokenError{toks[i].text}
			}
		case lex.DelimToken:
			switch t.text {
			case ".":
				if i++; i == len(toks) {
					return selector.Selector{}, fmt.Errorf("%w: dangling '.'", ErrInvalidSelector)
				}
				if toks[i].tt != lex.IdentToken {
					return selector.Selector{}, UnexpectedTokenError{toks[i].text}
				}
				els = append(els, selector.Class(toks[i].text))
			case "*":
				els = append(els, selector.Any())
			case ">", "+", "~":
				return selector.Selector{}, fmt.Errorf("%w: combinator %q", ErrUnsupportedSelector, t.text)
			default:
				return selector.Selector{}, UnexpectedTokenError{t.text}
			}
		case lex.LeftBracketToken, lex.ColumnToken:
			return selector.Selector{}, fmt.Errorf("%w: %q", ErrUnsupportedSelector, t.text)
		default:
			return selector.Selector{}, UnexpectedTokenError{t.text}
		}
	}
	sel := selector.New(els...)
	if sel.IsEmpty() {
		return sel, ErrInvalidSelector
	}
	return sel, nil
}

// --- Value tokens ----------------------------------------------------------

func toValueToken(l lexeme) (css.Token, bool) {
	switch l.tt {
	case lex.IdentToken:
		return css.Ident(l.text), true
	case lex.HashToken:
		return css.Hash(l.text[1:]), true
	case lex.StringToken:
		return css.Str(unquote(l.text)), true
	case lex.NumberToken:
		if x, ok := parseFloat(l.text); ok {
			return css.Number(x), true
		}
	case lex.PercentageToken:
		if x, ok := parseFloat(strings.TrimSuffix(l.text, "%")); ok {
			return css.Percentage(x), true
		}
	case lex.DimensionToken:
		num, _ := splitDimension(l.text)
		if x, ok := parseFloat(num); ok {
			return css.Dimension(x), true
		}
	}
	return css.Token{}, false
}

func parseFloat(s string) (float32, bool) {
	x, err := strconv.ParseFloat(s, 32)
	if err != nil {
		tracer().Debugf("cannot convert %q to a number: %v", s, err)
		return 0, false
	}
	return float32(x), true
}

// splitDimension splits a dimension like "12.5px" into number and unit.
func splitDimension(s string) (num, unit string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// unquote strips the quotes of a string token and resolves simple escapes.
// Hex escapes are not resolved.
func unquote(s string) string {
	if len(s) == 0 {
		return s
	}
	q := s[0]
	s = s[1:]
	if len(s) > 0 && s[len(s)-1] == q {
		s = s[:len(s)-1]
	}
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			if s[i] == '\n' {
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// --- Scanner ---------------------------------------------------------------

type lexeme struct {
	tt   lex.TokenType
	text string
}

type scanner struct {
	lexer  *lex.Lexer
	back   []lexeme
	failed bool
}

func newScanner(text string) *scanner {
	return &scanner{lexer: lex.NewLexer(parse.NewInputString(text))}
}

// next returns the next token, skipping comments. At the end of input it
// returns an ErrorToken, repeatedly.
func (s *scanner) next() lexeme {
	if n := len(s.back); n > 0 {
		l := s.back[n-1]
		s.back = s.back[:n-1]
		return l
	}
	for {
		tt, data := s.lexer.Next()
		if tt == lex.CommentToken {
			continue
		}
		if tt == lex.ErrorToken {
			if err := s.lexer.Err(); err != nil && err != io.EOF && !s.failed {
				tracer().Errorf("reading stylesheet: %v", err)
				s.failed = true
			}
		}
		return lexeme{tt: tt, text: string(data)}
	}
}

func (s *scanner) nextNonBlank() lexeme {
	for {
		if l := s.next(); l.tt != lex.WhitespaceToken {
			return l
		}
	}
}

func (s *scanner) unread(l lexeme) {
	s.back = append(s.back, l)
}

func blank(toks []lexeme) bool {
	for _, t := range toks {
		if t.tt != lex.WhitespaceToken {
			return false
		}
	}
	return true
}

func join(toks []lexeme) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}
