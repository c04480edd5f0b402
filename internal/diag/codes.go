package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnterminatedLit    Code = 1001
	LexMalformedLit       Code = 1002
	LexIdentNotNFC        Code = 1003
	LexUnknownChar        Code = 1004
	LexUnterminatedHeader Code = 1005

	// Директивы и макросы
	PPInfo               Code = 2000
	PPMalformedDirective Code = 2001
	PPUnknownDirective   Code = 2002
	PPMacroRedefined     Code = 2003
	PPBadMacroParams     Code = 2004
	PPUnbalancedCond     Code = 2005
	PPBadReplacement     Code = 2006
	PPUnterminatedArgs   Code = 2007
	PPIncludeNotFound    Code = 2008
	PPBadLine            Code = 2009
	PPIncludeTooDeep     Code = 2010
	PPUnterminatedCond   Code = 2011
	PPIgnoredPragma      Code = 2012
	PPUserError          Code = 3001
	PPUserWarning        Code = 3002

	// Синтаксис
	SynInfo            Code = 4000
	SynExpected        Code = 4001
	SynUnexpectedToken Code = 4002

	// Ввод-вывод
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnterminatedLit:    "Unterminated literal",
	LexMalformedLit:       "Malformed literal",
	LexIdentNotNFC:        "Identifier is not in Normalization Form C",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedHeader: "Unterminated header name",
	PPInfo:                "Preprocessor information",
	PPMalformedDirective:  "Malformed directive",
	PPUnknownDirective:    "Unknown directive",
	PPMacroRedefined:      "Incompatible macro redefinition",
	PPBadMacroParams:      "Invalid macro parameter list",
	PPUnbalancedCond:      "Unbalanced conditional directive",
	PPBadReplacement:      "Invalid macro replacement list",
	PPUnterminatedArgs:    "Unterminated macro argument list",
	PPIncludeNotFound:     "Include file not found",
	PPBadLine:             "Invalid #line directive",
	PPIncludeTooDeep:      "#include nested too deeply",
	PPUnterminatedCond:    "Unterminated conditional directive",
	PPIgnoredPragma:       "Pragma ignored",
	PPUserError:           "#error directive",
	PPUserWarning:         "#warning directive",
	SynInfo:               "Syntax information",
	SynExpected:           "Expected token",
	SynUnexpectedToken:    "Unexpected token",
	IOLoadFileError:       "I/O load file error",
	IOCacheError:          "Cache error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 4000:
		return fmt.Sprintf("PP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
