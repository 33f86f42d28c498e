package lexer

// keywords maps the exact-case reserved word spelling to its token kind,
// covering the reserved words of SMIv2. SMIv1 aliases (Counter, Gauge,
// NetworkAddress) are recognized as plain uppercase identifiers here, same
// as any other type reference; the codec registry maps their names onto
// the same decoder as their SMIv2 equivalents (see codec.DefaultRegistry).
var keywords = map[string]TokenKind{
	"BEGIN":               TokKwBegin,
	"END":                 TokKwEnd,
	"DEFINITIONS":         TokKwDefinitions,
	"IMPORTS":             TokKwImports,
	"EXPORTS":             TokKwExports,
	"FROM":                TokKwFrom,
	"SEQUENCE":            TokKwSequence,
	"SET":                 TokKwSet,
	"OF":                  TokKwOf,
	"CHOICE":              TokKwChoice,
	"INTEGER":             TokKwInteger,
	"OCTET":               TokKwOctet,
	"STRING":              TokKwString,
	"BIT":                 TokKwBit,
	"BITS":                TokKwBits,
	"NULL":                TokKwNull,
	"OBJECT":              TokKwObject,
	"IDENTIFIER":          TokKwIdentifier,
	"TRUE":                TokKwTrue,
	"FALSE":               TokKwFalse,
	"OPTIONAL":            TokKwOptional,
	"DEFAULT":             TokKwDefault,
	"IMPLICIT":            TokKwImplicit,
	"EXPLICIT":            TokKwExplicit,
	"TAGS":                TokKwTags,
	"AUTOMATIC":           TokKwAutomatic,
	"EXTENSIBILITY":       TokKwExtensibility,
	"IMPLIED":             TokKwImplied,
	"APPLICATION":         TokKwApplication,
	"UNIVERSAL":           TokKwUniversal,
	"CLASS":               TokKwClass,
	"UNIQUE":              TokKwUnique,
	"WITH":                TokKwWith,
	"SYNTAX":              TokKwSyntax,
	"TEXTUAL-CONVENTION":  TokKwTextualConvention,
	"OBJECT-TYPE":         TokKwObjectType,
	"OBJECT-IDENTITY":     TokKwObjectIdentity,
	"OBJECT-GROUP":        TokKwObjectGroup,
	"MODULE-IDENTITY":     TokKwModuleIdentity,
	"MODULE-COMPLIANCE":   TokKwModuleCompliance,
	"NOTIFICATION-TYPE":   TokKwNotificationType,
	"NOTIFICATION-GROUP":  TokKwNotificationGroup,
	"AGENT-CAPABILITIES":  TokKwAgentCapabilities,
	"TRAP-TYPE":           TokKwTrapType,
	"MACRO":               TokKwMacro,
	"MAX-ACCESS":          TokKwMaxAccess,
	"MIN-ACCESS":          TokKwMinAccess,
	"ACCESS":              TokKwAccess,
	"STATUS":              TokKwStatus,
	"ENTERPRISE":          TokKwEnterprise,
	"GROUP":               TokKwGroup,
	"SUPPORTS":            TokKwSupports,
	"VARIATION":           TokKwVariation,
	"REVISION":            TokKwRevision,
	"CONTACT-INFO":        TokKwContactInfo,
	"ORGANIZATION":        TokKwOrganization,
	"LAST-UPDATED":        TokKwLastUpdated,
	"UNITS":               TokKwUnits,
	"REFERENCE":           TokKwReference,
	"DESCRIPTION":         TokKwDescription,
	"MODULE":              TokKwModule,
	"INCLUDES":            TokKwIncludes,
	"MANDATORY-GROUPS":    TokKwMandatoryGroups,
	"OBJECTS":             TokKwObjects,
	"VARIABLES":           TokKwVariables,
	"INDEX":               TokKwIndex,
	"DEFVAL":              TokKwDefval,
	"DISPLAY-HINT":        TokKwDisplayHint,
	"NOTIFICATIONS":       TokKwNotifications,
	"AUGMENTS":            TokKwAugments,
	"WRITE-SYNTAX":        TokKwWriteSyntax,
	"PRODUCT-RELEASE":     TokKwProductRelease,
	"CREATION-REQUIRES":   TokKwCreationRequires,
	"SIZE":                TokKwSize,
}

// forbiddenKeywords are ASN.1 reserved words that never appear validly in
// SMI source; the lexer flags them distinctly so the parser can raise a
// clear diagnostic instead of treating them as an ordinary identifier.
var forbiddenKeywords = map[string]struct{}{
	"ANY": {}, "BOOLEAN": {}, "ENUMERATED": {}, "EXTERNAL": {}, "REAL": {},
	"ABSENT": {}, "PRESENT": {}, "COMPONENT": {}, "COMPONENTS": {},
	"DEFINED": {}, "INSTANCE": {}, "MIN": {}, "MAX": {}, "PLUS-INFINITY": {},
	"MINUS-INFINITY": {},
}

// LookupKeyword returns the reserved-word token kind for text, if any.
func LookupKeyword(text string) (TokenKind, bool) {
	kind, ok := keywords[text]
	return kind, ok
}

// IsForbiddenKeyword reports whether text is a reserved ASN.1 word that
// SMI forbids.
func IsForbiddenKeyword(text string) bool {
	_, ok := forbiddenKeywords[text]
	return ok
}

func init() {
	for text, kind := range keywords {
		tokenNames[kind] = text
	}
}
