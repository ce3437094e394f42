// Package token defines the lexical token kinds produced by the lexer.
package token

import "github.com/reproto/reproto/internal/rpnumber"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Invalid Kind = iota

	// Identifiers and literals.
	Ident     // value-identifier: starts lowercase or '_'
	TypeIdent // type-identifier: starts uppercase
	Number
	String
	Version // raw text following '@', parsed later by semver

	// Keywords.
	KwType
	KwInterface
	KwTuple
	KwEnum
	KwService
	KwPackage
	KwUse
	KwAs
	KwMatch
	KwOn
	KwAny
	KwFloat
	KwDouble
	KwSigned
	KwUnsigned
	KwBoolean
	KwString
	KwBytes
	KwDatetime
	KwTrue
	KwFalse
	KwEndpoint
	KwReturns
	KwStream

	// Punctuation.
	LeftCurly
	RightCurly
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	Semicolon
	Colon
	Comma
	Dot
	Optional
	Amp
	Slash
	Equals
	Star
	At
	Scope     // '::'
	HashRocket // '=>'
	Arrow      // '->'
	HashOpen   // '#['

	// Verbatim code blocks.
	CodeOpen    // '{{'
	CodeClose   // '}}'
	CodeContent // dedented lines between CodeOpen and CodeClose

	EOF
)

var keywords = map[string]Kind{
	"type":      KwType,
	"interface": KwInterface,
	"tuple":     KwTuple,
	"enum":      KwEnum,
	"service":   KwService,
	"package":   KwPackage,
	"use":       KwUse,
	"as":        KwAs,
	"match":     KwMatch,
	"on":        KwOn,
	"any":       KwAny,
	"float":     KwFloat,
	"double":    KwDouble,
	"signed":    KwSigned,
	"unsigned":  KwUnsigned,
	"boolean":   KwBoolean,
	"string":    KwString,
	"bytes":     KwBytes,
	"datetime":  KwDatetime,
	"true":      KwTrue,
	"false":     KwFalse,
	"endpoint":  KwEndpoint,
	"returns":   KwReturns,
	"stream":    KwStream,
}

// IsKeyword reports whether k is one of the reserved words, as opposed
// to an identifier, literal, or punctuation mark.
func (k Kind) IsKeyword() bool {
	return k >= KwType && k <= KwStream
}

// Lookup returns the keyword Kind for word, or (Invalid, false) if word is
// not a keyword. A leading underscore always suppresses keyword
// classification, so callers should not call Lookup for identifiers
// starting with '_'.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Token is one lexical unit together with whatever payload its Kind
// requires.
type Token struct {
	Kind   Kind
	Text   string          // raw text for idents, keywords, punctuation, version
	Str    string          // decoded value for String tokens
	Num    rpnumber.Number // decoded value for Number tokens
	Lines  []string        // dedented lines for CodeContent tokens
	Doc    []string        // line-comments immediately preceding this token, dedented
}

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Ident:
		return "identifier"
	case TypeIdent:
		return "type identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Version:
		return "version"
	case EOF:
		return "end of file"
	case LeftCurly:
		return "'{'"
	case RightCurly:
		return "'}'"
	case LeftBracket:
		return "'['"
	case RightBracket:
		return "']'"
	case LeftParen:
		return "'('"
	case RightParen:
		return "')'"
	case Semicolon:
		return "';'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case Optional:
		return "'?'"
	case Amp:
		return "'&'"
	case Slash:
		return "'/'"
	case Equals:
		return "'='"
	case Star:
		return "'*'"
	case At:
		return "'@'"
	case Scope:
		return "'::'"
	case HashRocket:
		return "'=>'"
	case Arrow:
		return "'->'"
	case HashOpen:
		return "'#['"
	case CodeOpen:
		return "'{{'"
	case CodeClose:
		return "'}}'"
	case CodeContent:
		return "code content"
	default:
		for word, kw := range keywords {
			if kw == k {
				return "'" + word + "'"
			}
		}
		return "unknown token"
	}
}
