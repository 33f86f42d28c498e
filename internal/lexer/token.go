// Package lexer tokenizes SMI/SMIv2 MIB source text.
package lexer

import "github.com/BabisK/snmpcodec/internal/types"

// Token is a single lexical token with its source span.
type Token struct {
	Kind TokenKind
	Span types.Span
}

// TokenKind identifies a token's lexical class.
type TokenKind int

const (
	// === special ===

	TokError TokenKind = iota
	TokEOF
	TokForbiddenKeyword // reserved ASN.1 words disallowed in SMI (BOOLEAN, REAL, ...)

	// === identifiers & literals ===

	TokUppercaseIdent
	TokLowercaseIdent
	TokNumber         // unsigned decimal
	TokNegativeNumber // leading '-' decimal
	TokQuotedString   // "..."
	TokHexString      // '...'H
	TokBinString      // '...'B

	// === punctuation ===

	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokLParen
	TokRParen
	TokLDoubleBracket // [[
	TokRDoubleBracket // ]]
	TokColon
	TokSemicolon
	TokComma
	TokDot
	TokDotDot   // ..
	TokEllipsis // ...
	TokPipe
	TokMinus
	TokLess
	TokGreater
	TokBang
	TokAmpersand
	TokAt
	TokAtDot // @.
	TokColonColon
	TokColonColonEqual // ::=

	// === reserved words (SMIv2 grammar keywords) ===

	TokKwBegin
	TokKwEnd
	TokKwDefinitions
	TokKwImports
	TokKwExports
	TokKwFrom
	TokKwSequence
	TokKwSet
	TokKwOf
	TokKwChoice
	TokKwInteger
	TokKwOctet
	TokKwString
	TokKwBit
	TokKwBits
	TokKwNull
	TokKwObject
	TokKwIdentifier
	TokKwTrue
	TokKwFalse
	TokKwOptional
	TokKwDefault
	TokKwImplicit
	TokKwExplicit
	TokKwTags
	TokKwAutomatic
	TokKwExtensibility
	TokKwImplied
	TokKwApplication
	TokKwUniversal
	TokKwClass
	TokKwUnique
	TokKwWith
	TokKwSyntax
	TokKwTextualConvention
	TokKwObjectType
	TokKwObjectIdentity
	TokKwObjectGroup
	TokKwModuleIdentity
	TokKwModuleCompliance
	TokKwNotificationType
	TokKwNotificationGroup
	TokKwAgentCapabilities
	TokKwTrapType
	TokKwMacro

	// === macro/clause attribute keywords ===

	TokKwMaxAccess
	TokKwMinAccess
	TokKwAccess
	TokKwStatus
	TokKwEnterprise
	TokKwGroup
	TokKwObjectKw // never produced: OBJECT always lexes as TokKwObject, attribute name or not
	TokKwSupports
	TokKwVariation
	TokKwRevision
	TokKwContactInfo
	TokKwOrganization
	TokKwLastUpdated
	TokKwUnits
	TokKwReference
	TokKwDescription
	TokKwModule
	TokKwIncludes
	TokKwMandatoryGroups
	TokKwObjects
	TokKwVariables
	TokKwIndex
	TokKwDefval
	TokKwDisplayHint
	TokKwNotifications
	TokKwAugments
	TokKwWriteSyntax
	TokKwProductRelease
	TokKwCreationRequires
	TokKwSize

	// TokKwEOFMarker marks the end of the keyword range for IsKeyword.
	tokKwEOFMarker
)

// IsKeyword reports whether this token is one of the reserved words above.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwBegin && k < tokKwEOFMarker
}

// IsMacroKeyword reports whether this token selects a macro assignment's
// right-hand side.
func (k TokenKind) IsMacroKeyword() bool {
	switch k {
	case TokKwObjectType, TokKwTrapType, TokKwModuleIdentity, TokKwObjectIdentity,
		TokKwObjectGroup, TokKwModuleCompliance, TokKwNotificationType,
		TokKwTextualConvention, TokKwNotificationGroup, TokKwAgentCapabilities:
		return true
	default:
		return false
	}
}

// IsBuiltinTypeStart reports whether this token can begin a builtinType.
func (k TokenKind) IsBuiltinTypeStart() bool {
	switch k {
	case TokKwInteger, TokKwOctet, TokKwBit, TokKwBits, TokKwObject, TokKwNull,
		TokKwSequence, TokKwSet, TokKwChoice, TokUppercaseIdent:
		return true
	default:
		return false
	}
}

// String renders a libsmi-style uppercase name, useful in diagnostics and
// in ParseError's "expected one of: ..." listings.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

var tokenNames = map[TokenKind]string{
	TokError: "ERROR", TokEOF: "EOF", TokForbiddenKeyword: "FORBIDDEN_KEYWORD",
	TokUppercaseIdent: "UPPERCASE_IDENTIFIER", TokLowercaseIdent: "LOWERCASE_IDENTIFIER",
	TokNumber: "NUMBER", TokNegativeNumber: "NEGATIVENUMBER", TokQuotedString: "QUOTED_STRING",
	TokHexString: "HEX_STRING", TokBinString: "BIN_STRING",
	TokLBracket: "[", TokRBracket: "]", TokLBrace: "{", TokRBrace: "}",
	TokLParen: "(", TokRParen: ")", TokLDoubleBracket: "[[", TokRDoubleBracket: "]]",
	TokColon: ":", TokSemicolon: ";", TokComma: ",", TokDot: ".", TokDotDot: "..",
	TokEllipsis: "...", TokPipe: "|", TokMinus: "-", TokLess: "<", TokGreater: ">",
	TokBang: "!", TokAmpersand: "&", TokAt: "@", TokAtDot: "@.",
	TokColonColon: "::", TokColonColonEqual: "::=",
}
