package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BabisK/snmpcodec/internal/lexer"
	"github.com/BabisK/snmpcodec/internal/types"
)

// Parser is a recursive-descent walker over a pre-tokenized MIB source,
// driving a Listener. It never builds a parse tree; every production's
// semantics are reported immediately as the tokens are consumed.
type Parser struct {
	toks     []lexer.Token
	lex      *lexer.Lexer
	pos      int
	listener Listener
	log      types.Logger
}

// New builds a Parser over toks (as produced by lex.Tokenize()).
func New(toks []lexer.Token, lex *lexer.Lexer, listener Listener, log types.Logger) *Parser {
	return &Parser{toks: toks, lex: lex, listener: listener, log: log}
}

// Parse drives the listener through exactly one moduleDefinition.
func (p *Parser) Parse() {
	p.parseModule()
}

func (p *Parser) peek() lexer.Token { return p.toks[p.pos] }
func (p *Parser) at(k lexer.TokenKind) bool { return p.peek().Kind == k }
func (p *Parser) atEOF() bool { return p.peek().Kind == lexer.TokEOF }

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if tok.Kind != lexer.TokEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k lexer.TokenKind) lexer.Token {
	tok := p.peek()
	if tok.Kind != k {
		p.errorf("expected %s, got %s", k, tok.Kind)
		return tok
	}
	return p.advance()
}

func (p *Parser) expectIdentText() string {
	tok := p.peek()
	if tok.Kind != lexer.TokLowercaseIdent && tok.Kind != lexer.TokUppercaseIdent {
		p.errorf("expected an identifier, got %s", tok.Kind)
		return ""
	}
	p.advance()
	return p.text(tok)
}

func (p *Parser) expectQuotedString() string {
	tok := p.expect(lexer.TokQuotedString)
	return unquote(p.text(tok))
}

func (p *Parser) text(tok lexer.Token) string { return p.lex.Text(tok) }

func (p *Parser) errorf(format string, args ...any) {
	p.listener.Error(fmt.Errorf(format, args...))
}

// resync discards tokens until it finds a plausible top-level assignment
// boundary: depth back at zero and the next token starts a new name or
// closes the module. A malformed assignment is abandoned outright rather
// than recovered mid-production.
func (p *Parser) resync() {
	p.advance()
	depth := 0
	for !p.atEOF() {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokLBrace, lexer.TokLParen, lexer.TokLBracket, lexer.TokLDoubleBracket:
			depth++
		case lexer.TokRBrace, lexer.TokRParen, lexer.TokRBracket, lexer.TokRDoubleBracket:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && (tok.Kind == lexer.TokUppercaseIdent || tok.Kind == lexer.TokLowercaseIdent || tok.Kind == lexer.TokKwEnd) {
			return
		}
		p.advance()
	}
}

func parseDecimal(text string) int64 {
	v, _ := strconv.ParseInt(text, 10, 64)
	return v
}

// unquote strips the surrounding quotes from a CSTRING token's raw text
// and resolves \" and \\ escapes.
func unquote(raw string) string {
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// hexBinDigits strips the surrounding quotes and trailing H/B radix marker
// from a HEX_STRING/BIN_STRING token's raw text.
func hexBinDigits(raw string) string {
	end := strings.LastIndexByte(raw, '\'')
	if end <= 0 {
		return ""
	}
	return raw[1:end]
}

func (p *Parser) parseModule() {
	nameTok := p.expect(lexer.TokUppercaseIdent)
	name := p.text(nameTok)
	p.listener.EnterModule(name)
	p.expect(lexer.TokKwDefinitions)
	// Skip any TAGS/EXTENSIBILITY IMPLIED clause; it carries no semantics
	// this implementation's consumers need.
	for !p.at(lexer.TokColonColonEqual) && !p.atEOF() {
		p.advance()
	}
	p.expect(lexer.TokColonColonEqual)
	p.expect(lexer.TokKwBegin)
	if p.at(lexer.TokKwExports) {
		p.advance()
		p.expect(lexer.TokSemicolon)
	}
	if p.at(lexer.TokKwImports) {
		p.parseImports()
	}
	for p.parseAssignment() {
	}
	p.expect(lexer.TokKwEnd)
	p.listener.ExitModule()
}

func (p *Parser) parseImports() {
	p.advance() // IMPORTS
	for !p.at(lexer.TokSemicolon) && !p.atEOF() {
		var names []string
		for {
			// Macro names imported from SNMPv2-SMI/SNMPv2-TC (OBJECT-TYPE,
			// TEXTUAL-CONVENTION, ...) lex as keywords, not identifiers, but
			// are legal import list members all the same.
			tok := p.peek()
			if tok.Kind == lexer.TokKwFrom {
				break
			}
			if tok.Kind != lexer.TokLowercaseIdent && tok.Kind != lexer.TokUppercaseIdent && !tok.Kind.IsKeyword() {
				break
			}
			p.advance()
			names = append(names, p.text(tok))
			if p.at(lexer.TokComma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(lexer.TokKwFrom)
		moduleTok := p.expect(lexer.TokUppercaseIdent)
		module := p.text(moduleTok)
		for _, n := range names {
			p.listener.Import(n, module)
		}
	}
	p.expect(lexer.TokSemicolon)
}

// parseAssignment consumes exactly one top-level assignment and reports
// whether there was one to consume (false at END or EOF).
func (p *Parser) parseAssignment() bool {
	if p.atEOF() || p.at(lexer.TokKwEnd) {
		return false
	}
	if p.toks[p.pos+1].Kind == lexer.TokKwMacro {
		// Macro definition: "NAME MACRO ::= BEGIN ... END". The lexer has
		// already discarded the body, leaving only the frame; the name may
		// be a keyword spelling (OBJECT-TYPE) or an uppercase identifier.
		p.advance()
		p.advance()
		p.expect(lexer.TokColonColonEqual)
		p.expect(lexer.TokKwBegin)
		p.expect(lexer.TokKwEnd)
		return true
	}
	nameTok := p.peek()
	if nameTok.Kind != lexer.TokUppercaseIdent && nameTok.Kind != lexer.TokLowercaseIdent {
		p.errorf("expected an assignment name, got %s", nameTok.Kind)
		p.resync()
		return true
	}
	name := p.text(nameTok)
	p.advance()

	if nameTok.Kind == lexer.TokUppercaseIdent {
		p.expect(lexer.TokColonColonEqual)
		if p.at(lexer.TokKwTextualConvention) {
			p.advance()
			p.listener.BeginAssignment(name, "TEXTUAL-CONVENTION")
			p.parseAttributeClauses()
			p.listener.EndAssignment()
		} else {
			p.listener.BeginAssignment(name, "TYPE")
			p.parseType()
			p.listener.EndAssignment()
		}
		return true
	}

	if p.peek().Kind.IsMacroKeyword() {
		macroTok := p.advance()
		macroName := macroTok.Kind.String()
		p.listener.BeginAssignment(name, macroName)
		p.parseAttributeClauses()
		p.expect(lexer.TokColonColonEqual)
		if macroName == "TRAP-TYPE" {
			numTok := p.peek()
			if numTok.Kind == lexer.TokNumber {
				p.advance()
				p.listener.IntegerValue(parseDecimal(p.text(numTok)))
			} else {
				p.errorf("expected a trap number, got %s", numTok.Kind)
			}
		} else {
			p.parseOidPath()
		}
		p.listener.EndAssignment()
		return true
	}

	p.listener.BeginAssignment(name, "VALUE")
	p.parseType()
	p.expect(lexer.TokColonColonEqual)
	p.parseValue()
	p.listener.EndAssignment()
	return true
}

// parseAttributeClauses consumes every recognised macro attribute clause
// in whatever order it finds them (real-world MIBs are casual about
// attribute ordering), stopping as soon as it sees a token
// that doesn't start a known clause — the natural end of the bag, whether
// that's "::=" (macro assignments) or the next top-level name (a
// TEXTUAL-CONVENTION, which has no trailing "::=").
func (p *Parser) parseAttributeClauses() {
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokKwDescription, lexer.TokKwReference, lexer.TokKwUnits,
			lexer.TokKwContactInfo, lexer.TokKwOrganization, lexer.TokKwLastUpdated,
			lexer.TokKwDisplayHint, lexer.TokKwProductRelease:
			name := tok.Kind.String()
			p.advance()
			p.listener.AttributeText(name, p.expectQuotedString())

		case lexer.TokKwStatus, lexer.TokKwAccess, lexer.TokKwMaxAccess, lexer.TokKwMinAccess:
			name := tok.Kind.String()
			p.advance()
			p.listener.AttributeText(name, p.expectIdentText())

		case lexer.TokKwSyntax, lexer.TokKwWriteSyntax:
			name := tok.Kind.String()
			p.advance()
			p.listener.Attribute(name)
			p.parseType()
			p.listener.EndAttribute()

		case lexer.TokKwIndex:
			p.advance()
			p.listener.Attribute("INDEX")
			p.expect(lexer.TokLBrace)
			for !p.at(lexer.TokRBrace) && !p.atEOF() {
				implied := false
				if p.at(lexer.TokKwImplied) {
					p.advance()
					implied = true
				}
				p.listener.IndexItem(p.expectIdentText(), implied)
				if p.at(lexer.TokComma) {
					p.advance()
				}
			}
			p.expect(lexer.TokRBrace)
			p.listener.EndAttribute()

		case lexer.TokKwAugments:
			p.advance()
			p.expect(lexer.TokLBrace)
			ref := p.expectIdentText()
			p.expect(lexer.TokRBrace)
			p.listener.AttributeText("AUGMENTS", ref)

		case lexer.TokKwEnterprise:
			p.advance()
			if p.at(lexer.TokLBrace) {
				p.listener.Attribute("ENTERPRISE")
				p.parseOidPath()
				p.listener.EndAttribute()
			} else {
				p.listener.AttributeSymbol("ENTERPRISE", p.expectIdentText())
			}

		case lexer.TokKwObjects, lexer.TokKwCreationRequires:
			name := tok.Kind.String()
			p.advance()
			p.expect(lexer.TokLBrace)
			for !p.at(lexer.TokRBrace) && !p.atEOF() {
				p.listener.AttributeValueListItem(name, p.expectIdentText())
				if p.at(lexer.TokComma) {
					p.advance()
				}
			}
			p.expect(lexer.TokRBrace)

		case lexer.TokKwNotifications, lexer.TokKwMandatoryGroups, lexer.TokKwVariables, lexer.TokKwIncludes:
			name := tok.Kind.String()
			p.advance()
			p.expect(lexer.TokLBrace)
			for !p.at(lexer.TokRBrace) && !p.atEOF() {
				p.listener.AttributeRawIdentListItem(name, p.expectIdentText())
				if p.at(lexer.TokComma) {
					p.advance()
				}
			}
			p.expect(lexer.TokRBrace)

		case lexer.TokKwDefval:
			p.advance()
			p.expect(lexer.TokLBrace)
			p.listener.Attribute("DEFVAL")
			p.parseValue()
			p.listener.EndAttribute()
			p.expect(lexer.TokRBrace)

		case lexer.TokKwRevision:
			p.advance()
			date := p.expectQuotedString()
			p.expect(lexer.TokKwDescription)
			p.listener.Revision(date, p.expectQuotedString())

		case lexer.TokKwModule:
			// MODULE-COMPLIANCE's nested MODULE clause: the group-level
			// MANDATORY-GROUPS list and the GROUP/OBJECT names are
			// captured; SYNTAX/WRITE-SYNTAX/MIN-ACCESS refinement bodies
			// are structural compliance narrowing this implementation
			// does not model and are skipped.
			p.advance()
			if p.peek().Kind == lexer.TokUppercaseIdent {
				p.listener.AttributeSymbol("MODULE", p.expectIdentText())
			}
			p.parseComplianceBody()

		case lexer.TokKwSupports:
			// AGENT-CAPABILITIES's SUPPORTS clause. VARIATION names are
			// captured; their refinement bodies are skipped for the same
			// reason as MODULE-COMPLIANCE refinements above.
			p.advance()
			p.listener.AttributeText("SUPPORTS", p.expectIdentText())
			p.expect(lexer.TokKwIncludes)
			p.expect(lexer.TokLBrace)
			for !p.at(lexer.TokRBrace) && !p.atEOF() {
				p.listener.AttributeRawIdentListItem("INCLUDES", p.expectIdentText())
				if p.at(lexer.TokComma) {
					p.advance()
				}
			}
			p.expect(lexer.TokRBrace)
			p.parseVariationBody()

		default:
			return
		}
	}
}

// parseComplianceBody consumes a MODULE-COMPLIANCE MODULE clause's body up
// to the next MODULE clause or the terminal "::=".
func (p *Parser) parseComplianceBody() {
	for !p.atEOF() {
		switch p.peek().Kind {
		case lexer.TokKwModule, lexer.TokColonColonEqual:
			return
		case lexer.TokKwMandatoryGroups:
			p.advance()
			p.expect(lexer.TokLBrace)
			for !p.at(lexer.TokRBrace) && !p.atEOF() {
				p.listener.AttributeRawIdentListItem("MANDATORY-GROUPS", p.expectIdentText())
				if p.at(lexer.TokComma) {
					p.advance()
				}
			}
			p.expect(lexer.TokRBrace)
		case lexer.TokKwGroup:
			p.advance()
			p.listener.AttributeSymbolListItem("GROUP", p.expectIdentText())
		case lexer.TokKwObject:
			// "OBJECT name" refinement; "SYNTAX OBJECT IDENTIFIER" inside a
			// refinement also starts with this keyword, distinguished by
			// what follows.
			p.advance()
			if p.at(lexer.TokLowercaseIdent) {
				p.listener.AttributeSymbolListItem("OBJECT", p.expectIdentText())
			}
		default:
			p.advance()
		}
	}
}

// parseVariationBody consumes an AGENT-CAPABILITIES SUPPORTS clause's
// VARIATION list up to the next SUPPORTS clause or the terminal "::=".
func (p *Parser) parseVariationBody() {
	for !p.atEOF() {
		switch p.peek().Kind {
		case lexer.TokKwSupports, lexer.TokColonColonEqual:
			return
		case lexer.TokKwVariation:
			p.advance()
			p.listener.AttributeSymbolListItem("VARIATION", p.expectIdentText())
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseType() {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokKwInteger:
		p.advance()
		p.listener.BeginType("INTEGER")
		switch {
		case p.at(lexer.TokLBrace):
			p.parseNamedNumberList()
		case p.at(lexer.TokLParen):
			p.parseConstraint()
		}
		p.listener.EndType()

	case lexer.TokKwOctet:
		p.advance()
		p.expect(lexer.TokKwString)
		p.listener.BeginType("OCTET STRING")
		if p.at(lexer.TokLParen) {
			p.parseConstraint()
		}
		p.listener.EndType()

	case lexer.TokKwBit:
		p.advance()
		p.expect(lexer.TokKwString)
		p.listener.BeginType("BIT STRING")
		if p.at(lexer.TokLParen) {
			p.parseConstraint()
		}
		p.listener.EndType()

	case lexer.TokKwBits:
		p.advance()
		p.listener.BeginType("BITS")
		p.parseNamedNumberList()
		p.listener.EndType()

	case lexer.TokKwObject:
		p.advance()
		p.expect(lexer.TokKwIdentifier)
		p.listener.BeginType("OBJECT IDENTIFIER")
		p.listener.EndType()

	case lexer.TokKwNull:
		p.advance()
		p.listener.BeginType("NULL")
		p.listener.EndType()

	case lexer.TokKwSequence:
		p.advance()
		if p.at(lexer.TokKwOf) {
			p.advance()
			p.listener.BeginType("SEQUENCE OF")
			p.parseType()
			p.listener.EndType()
			return
		}
		p.listener.BeginType("SEQUENCE")
		p.expect(lexer.TokLBrace)
		for !p.at(lexer.TokRBrace) && !p.atEOF() {
			field := p.expectIdentText()
			p.listener.BeginField(field)
			p.parseType()
			p.listener.EndField()
			if p.at(lexer.TokComma) {
				p.advance()
			}
		}
		p.expect(lexer.TokRBrace)
		p.listener.EndType()

	case lexer.TokKwChoice:
		p.advance()
		p.listener.BeginType("CHOICE")
		p.expect(lexer.TokLBrace)
		for !p.at(lexer.TokRBrace) && !p.atEOF() {
			field := p.expectIdentText()
			p.listener.BeginField(field)
			p.parseType()
			p.listener.EndField()
			if p.at(lexer.TokComma) {
				p.advance()
			}
		}
		p.expect(lexer.TokRBrace)
		p.listener.EndType()

	case lexer.TokUppercaseIdent:
		name := p.text(tok)
		p.advance()
		module := ""
		if p.at(lexer.TokDot) {
			p.advance()
			module = name
			nameTok := p.expect(lexer.TokUppercaseIdent)
			name = p.text(nameTok)
		}
		p.listener.BeginType("REFERENCED")
		p.listener.TypeReference(module, name)
		if p.at(lexer.TokLParen) {
			p.parseConstraint()
		}
		p.listener.EndType()

	default:
		p.errorf("expected a type, got %s", tok.Kind)
	}
}

func (p *Parser) parseNamedNumberList() {
	p.expect(lexer.TokLBrace)
	for !p.at(lexer.TokRBrace) && !p.atEOF() {
		name := p.expectIdentText()
		p.expect(lexer.TokLParen)
		n := p.parseConstraintNumber()
		p.expect(lexer.TokRParen)
		p.listener.NamedNumber(name, n)
		if p.at(lexer.TokComma) {
			p.advance()
		}
	}
	p.expect(lexer.TokRBrace)
}

func (p *Parser) parseConstraint() {
	p.expect(lexer.TokLParen)
	isSize := false
	if p.at(lexer.TokKwSize) {
		p.advance()
		isSize = true
		p.expect(lexer.TokLParen)
	}
	p.listener.BeginConstraint(isSize)
	p.parseConstraintElements()
	if isSize {
		p.expect(lexer.TokRParen)
	}
	p.listener.EndConstraint()
	p.expect(lexer.TokRParen)
}

func (p *Parser) parseConstraintElements() {
	for {
		lo := p.parseConstraintNumber()
		if p.at(lexer.TokDotDot) {
			p.advance()
			p.listener.ConstraintRange(lo, p.parseConstraintNumber())
		} else {
			p.listener.ConstraintSingleton(lo)
		}
		if p.at(lexer.TokPipe) {
			p.advance()
			continue
		}
		break
	}
}

func (p *Parser) parseConstraintNumber() int64 {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokNegativeNumber:
		p.advance()
		return -parseDecimal(strings.TrimPrefix(p.text(tok), "-"))
	case lexer.TokNumber:
		p.advance()
		return parseDecimal(p.text(tok))
	default:
		p.errorf("expected a number in constraint, got %s", tok.Kind)
		return 0
	}
}

func (p *Parser) parseValue() {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TokNumber:
		p.advance()
		p.listener.IntegerValue(parseDecimal(p.text(tok)))
	case lexer.TokNegativeNumber:
		p.advance()
		p.listener.IntegerValue(-parseDecimal(strings.TrimPrefix(p.text(tok), "-")))
	case lexer.TokHexString:
		p.advance()
		p.listener.BigIntegerValue(hexBinDigits(p.text(tok)), 16)
	case lexer.TokBinString:
		p.advance()
		p.listener.BigIntegerValue(hexBinDigits(p.text(tok)), 2)
	case lexer.TokQuotedString:
		p.advance()
		p.listener.StringValue(unquote(p.text(tok)))
	case lexer.TokKwTrue:
		p.advance()
		p.listener.BooleanValue(true)
	case lexer.TokKwFalse:
		p.advance()
		p.listener.BooleanValue(false)
	case lexer.TokLBrace:
		p.parseOidPath()
	case lexer.TokLowercaseIdent, lexer.TokUppercaseIdent:
		p.advance()
		p.listener.ReferenceValue(p.text(tok))
	default:
		p.errorf("expected a value, got %s", tok.Kind)
	}
}

func (p *Parser) parseOidPath() {
	p.expect(lexer.TokLBrace)
	p.listener.BeginOidPath()
	for !p.at(lexer.TokRBrace) && !p.atEOF() {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokNumber:
			p.advance()
			p.listener.OidNumberComponent(uint32(parseDecimal(p.text(tok))))
		case lexer.TokLowercaseIdent, lexer.TokUppercaseIdent:
			p.advance()
			name := p.text(tok)
			if p.at(lexer.TokLParen) {
				p.advance()
				numTok := p.expect(lexer.TokNumber)
				n := uint32(parseDecimal(p.text(numTok)))
				p.expect(lexer.TokRParen)
				p.listener.OidNamedNumberComponent(name, n)
			} else {
				p.listener.OidNameComponent(name)
			}
		default:
			p.errorf("expected an OID component, got %s", tok.Kind)
			p.advance()
		}
	}
	p.expect(lexer.TokRBrace)
	p.listener.EndOidPath()
}
