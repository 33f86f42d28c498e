package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/BabisK/snmpcodec/internal/types"
)

// state tracks lexer sub-modes entered by certain keywords.
type state int

const (
	stateNormal state = iota
	stateInMacroHeader
	stateInMacroBody
	stateInExports
)

// Lexer tokenizes SMI/SMIv2 MIB source text. It is lenient by
// default: rather than aborting on the first bad character it records a
// diagnostic and keeps scanning, matching the "collect, don't abort early"
// posture used by every phase in this compiler.
type Lexer struct {
	source []byte
	pos    int
	state  state

	diagnostics []types.Diagnostic
	types.Logger
}

// New creates a Lexer over source. logger is optional; pass nil to disable
// lexer-level logging entirely (zero overhead).
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{source: source, Logger: types.Logger{L: logger}}
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("source_len", len(source)))
	return l
}

// Diagnostics returns a copy of all diagnostics collected so far.
func (l *Lexer) Diagnostics() []types.Diagnostic { return slices.Clone(l.diagnostics) }

// Tokenize scans the full input into a token slice, terminated by TokEOF.
func (l *Lexer) Tokenize() ([]Token, []types.Diagnostic) {
	estimated := len(l.source) / 6
	if estimated < 64 {
		estimated = 64
	}
	tokens := make([]Token, 0, estimated)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return tokens, l.diagnostics
}

// NextToken returns the next token, honoring the current sub-mode.
func (l *Lexer) NextToken() Token {
	switch l.state {
	case stateInMacroHeader:
		// The "::= BEGIN" frame after a MACRO keyword lexes normally; the
		// body after BEGIN is discarded wholesale.
		tok := l.nextNormalToken()
		switch tok.Kind {
		case TokKwBegin:
			l.state = stateInMacroBody
		case TokEOF:
			l.state = stateNormal
		}
		return tok
	case stateInMacroBody:
		return l.skipMacroBody()
	case stateInExports:
		return l.skipExportsBody()
	default:
		return l.nextNormalToken()
	}
}

func (l *Lexer) isEOF() bool { return l.pos >= len(l.source) }

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.peek()
		if !ok || !(b == ' ' || b == '\t' || b == '\r' || b == '\n') {
			return
		}
		l.advance()
	}
}

func (l *Lexer) skipLineEnding() {
	b, ok := l.advance()
	if ok && b == '\r' {
		if next, ok := l.peek(); ok && next == '\n' {
			l.advance()
		}
	}
}

// report records a diagnostic. Recoverable slips (a stray character the
// lexer can skip) go in at SeverityError; malformed literals the scanner
// cannot see past (unterminated strings, a missing radix suffix) at
// SeveritySevere, which fails the module under the default
// DiagnosticConfig.
func (l *Lexer) report(sev types.Severity, span types.Span, format string, args ...any) {
	l.diagnostics = append(l.diagnostics, types.Diagnostic{
		Severity: sev,
		Code:     types.DiagLexError,
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(l.pos))
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	tok := Token{Kind: kind, Span: l.spanFrom(start)}
	if l.TraceEnabled() {
		l.Trace("token", slog.String("kind", kind.String()), slog.Int("start", start), slog.Int("end", l.pos))
	}
	return tok
}

// nextNormalToken scans one token in the default lexical state.
func (l *Lexer) nextNormalToken() Token {
	l.skipWhitespace()
	start := l.pos

	b, ok := l.peek()
	if !ok {
		return l.token(TokEOF, start)
	}

	// Comments: "--" ... EOL or a second "--" on the same line.
	if b == '-' {
		if next, ok := l.peekAt(1); ok && next == '-' {
			l.advance()
			l.advance()
			l.skipComment()
			return l.nextNormalToken()
		}
	}

	switch b {
	case '[':
		l.advance()
		if next, ok := l.peek(); ok && next == '[' {
			l.advance()
			return l.token(TokLDoubleBracket, start)
		}
		return l.token(TokLBracket, start)
	case ']':
		l.advance()
		if next, ok := l.peek(); ok && next == ']' {
			l.advance()
			return l.token(TokRDoubleBracket, start)
		}
		return l.token(TokRBracket, start)
	case '{':
		l.advance()
		return l.token(TokLBrace, start)
	case '}':
		l.advance()
		return l.token(TokRBrace, start)
	case '(':
		l.advance()
		return l.token(TokLParen, start)
	case ')':
		l.advance()
		return l.token(TokRParen, start)
	case ';':
		l.advance()
		return l.token(TokSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokComma, start)
	case '|':
		l.advance()
		return l.token(TokPipe, start)
	case '<':
		l.advance()
		return l.token(TokLess, start)
	case '>':
		l.advance()
		return l.token(TokGreater, start)
	case '!':
		l.advance()
		return l.token(TokBang, start)
	case '&':
		l.advance()
		return l.token(TokAmpersand, start)
	case '@':
		l.advance()
		if next, ok := l.peek(); ok && next == '.' {
			l.advance()
			return l.token(TokAtDot, start)
		}
		return l.token(TokAt, start)
	case '.':
		l.advance()
		if next, ok := l.peek(); ok && next == '.' {
			l.advance()
			if after, ok := l.peek(); ok && after == '.' {
				l.advance()
				return l.token(TokEllipsis, start)
			}
			return l.token(TokDotDot, start)
		}
		return l.token(TokDot, start)
	case ':':
		l.advance()
		if next, ok := l.peek(); ok && next == ':' {
			l.advance()
			if after, ok := l.peek(); ok && after == '=' {
				l.advance()
				return l.token(TokColonColonEqual, start)
			}
			return l.token(TokColonColon, start)
		}
		return l.token(TokColon, start)
	case '-':
		if next, ok := l.peekAt(1); ok && isDigit(next) {
			return l.scanNegativeNumber()
		}
		l.advance()
		return l.token(TokMinus, start)
	}

	if isDigit(b) {
		return l.scanNumber()
	}
	if b == '"' {
		return l.scanQuotedString()
	}
	if b == '\'' {
		return l.scanHexOrBinString()
	}
	if _, _, isLetter := decodeLetter(l.source, l.pos); isLetter {
		return l.scanIdentifierOrKeyword()
	}

	// Unknown character: record and skip it, matching the lenient posture
	// of the rest of the pipeline.
	_, width, _ := decodeLetter(l.source, l.pos)
	l.pos += width
	span := l.spanFrom(start)
	l.report(types.SeverityError, span, "unexpected character: %q", string(l.source[start:l.pos]))
	return l.nextNormalToken()
}

// skipComment consumes a "--"-introduced comment up to EOL or a closing "--".
func (l *Lexer) skipComment() {
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		if b == '\n' || b == '\r' {
			l.skipLineEnding()
			return
		}
		if b == '-' {
			if next, ok := l.peekAt(1); ok && next == '-' {
				l.advance()
				l.advance()
				return
			}
		}
		l.advance()
	}
}

// skipMacroBody discards a MACRO ... END block wholesale: MACRO semantic
// evaluation is out of scope beyond recognising the SMIv2 surface.
func (l *Lexer) skipMacroBody() Token {
	for {
		l.skipWhitespace()
		if l.isEOF() {
			start := l.pos
			l.state = stateNormal
			return l.token(TokEOF, start)
		}
		if matchesKeyword(l.source[l.pos:], "END") {
			start := l.pos
			l.pos += 3
			b, ok := l.peek()
			isDelimiter := !ok || (b == '-' && l.peekAtEquals(1, '-')) || (!isAlphanumeric(b) && b != '-')
			if isDelimiter {
				l.state = stateNormal
				return l.token(TokKwEnd, start)
			}
			continue
		}
		if b, ok := l.peek(); ok && b == '-' {
			if next, ok := l.peekAt(1); ok && next == '-' {
				l.skipCommentInline()
				continue
			}
		}
		l.advance()
	}
}

// skipExportsBody discards an EXPORTS clause's symbol list: EXPORTS is
// recognized but not semantically tracked.
func (l *Lexer) skipExportsBody() Token {
	for {
		b, ok := l.peek()
		if !ok {
			start := l.pos
			l.state = stateNormal
			return l.token(TokEOF, start)
		}
		if b == ';' {
			start := l.pos
			l.advance()
			l.state = stateNormal
			return l.token(TokSemicolon, start)
		}
		l.advance()
	}
}

func (l *Lexer) skipCommentInline() {
	l.advance()
	l.advance()
	for {
		b, ok := l.peek()
		if !ok || b == '\n' || b == '\r' {
			return
		}
		if b == '-' {
			if next, ok := l.peekAt(1); ok && next == '-' {
				l.advance()
				l.advance()
				return
			}
		}
		l.advance()
	}
}

func matchesKeyword(src []byte, kw string) bool {
	if len(src) < len(kw) {
		return false
	}
	return string(src[:len(kw)]) == kw
}

func (l *Lexer) peekAtEquals(offset int, expected byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == expected
}

// scanIdentifierOrKeyword scans IDENTIFIER: a LETTER followed by
// letters/digits/hyphen, where a double hyphen terminates the identifier
// (it starts a comment instead).
func (l *Lexer) scanIdentifierOrKeyword() Token {
	start := l.pos
	firstByte := l.source[l.pos]
	_, firstWidth, _ := decodeLetter(l.source, l.pos)
	l.pos += firstWidth
	isUppercase := firstWidth == 1 && isUpperAlpha(firstByte)

	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if b < 0x80 {
			if isAlphanumeric(b) || b == '_' {
				l.advance()
				continue
			}
			if b == '-' {
				l.advance()
				if next, ok := l.peek(); ok && next == '-' {
					l.pos-- // leave the hyphen for the comment scanner
					break
				}
				continue
			}
			break
		}
		r, width, _ := decodeLetter(l.source, l.pos)
		if isExtendedAlphanumeric(r) {
			l.pos += width
			continue
		}
		break
	}

	text := string(l.source[start:l.pos])

	if kind, ok := LookupKeyword(text); ok {
		switch kind {
		case TokKwMacro:
			l.state = stateInMacroHeader
		case TokKwExports:
			l.state = stateInExports
		}
		return l.token(kind, start)
	}
	if IsForbiddenKeyword(text) {
		return l.token(TokForbiddenKeyword, start)
	}

	kind := TokLowercaseIdent
	if isUppercase {
		kind = TokUppercaseIdent
	}
	return l.token(kind, start)
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	return l.token(TokNumber, start)
}

func (l *Lexer) scanNegativeNumber() Token {
	start := l.pos
	l.advance() // '-'
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	return l.token(TokNegativeNumber, start)
}

func (l *Lexer) scanQuotedString() Token {
	start := l.pos
	l.advance() // opening quote
	for {
		b, ok := l.peek()
		if !ok {
			l.report(types.SeveritySevere, l.spanFrom(start), "unterminated string literal")
			return l.token(TokQuotedString, start)
		}
		if b == '"' {
			l.advance()
			return l.token(TokQuotedString, start)
		}
		if b == '\\' {
			l.advance()
			l.advance()
			continue
		}
		l.advance()
	}
}

// scanHexOrBinString scans 'digits'H or 'bits'B.
func (l *Lexer) scanHexOrBinString() Token {
	start := l.pos
	l.advance() // opening quote
	for {
		b, ok := l.peek()
		if !ok || b == '\'' {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); !ok || b != '\'' {
		l.report(types.SeveritySevere, l.spanFrom(start), "unterminated hex/binary string")
		return l.token(TokError, start)
	}
	l.advance() // closing quote

	suffix, ok := l.peek()
	if !ok {
		l.report(types.SeveritySevere, l.spanFrom(start), "expected 'H' or 'B' suffix")
		return l.token(TokError, start)
	}
	switch suffix {
	case 'H', 'h':
		l.advance()
		return l.token(TokHexString, start)
	case 'B', 'b':
		l.advance()
		return l.token(TokBinString, start)
	default:
		l.report(types.SeveritySevere, l.spanFrom(start), "expected 'H' or 'B' suffix, got %q", string(suffix))
		return l.token(TokError, start)
	}
}

// Text returns the raw source text covered by a token's span.
func (l *Lexer) Text(tok Token) string {
	return string(l.source[tok.Span.Start:tok.Span.End])
}
