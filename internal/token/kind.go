package token

// Kind represents the category of a C token. The set is closed.
type Kind uint8

const (
	// End marks the end of input; it is zero-width.
	End Kind = iota
	// Unknown is a character no other rule accepts.
	Unknown

	// Keywords (C23). Underscore spellings such as _Bool map to the same kind.
	KwAlignas      // alignas _Alignas
	KwAlignof      // alignof _Alignof
	KwAuto         // auto
	KwBool         // bool _Bool
	KwBreak        // break
	KwCase         // case
	KwChar         // char
	KwConst        // const
	KwConstexpr    // constexpr
	KwContinue     // continue
	KwDefault      // default
	KwDo           // do
	KwDouble       // double
	KwElse         // else
	KwEnum         // enum
	KwExtern       // extern
	KwFalse        // false
	KwFloat        // float
	KwFor          // for
	KwGoto         // goto
	KwIf           // if
	KwInline       // inline
	KwInt          // int
	KwLong         // long
	KwNullptr      // nullptr
	KwRegister     // register
	KwRestrict     // restrict
	KwReturn       // return
	KwShort        // short
	KwSigned       // signed
	KwSizeof       // sizeof
	KwStatic       // static
	KwStaticAssert // static_assert _Static_assert
	KwStruct       // struct
	KwSwitch       // switch
	KwThreadLocal  // thread_local _Thread_local
	KwTrue         // true
	KwTypedef      // typedef
	KwTypeof       // typeof
	KwTypeofUnqual // typeof_unqual
	KwUnion        // union
	KwUnsigned     // unsigned
	KwVoid         // void
	KwVolatile     // volatile
	KwWhile        // while
	KwAtomic       // _Atomic
	KwBitInt       // _BitInt
	KwComplex      // _Complex
	KwDecimal128   // _Decimal128
	KwDecimal32    // _Decimal32
	KwDecimal64    // _Decimal64
	KwGeneric      // _Generic
	KwImaginary    // _Imaginary
	KwNoreturn     // _Noreturn

	// Ident is an identifier that is not a keyword.
	Ident
	// IntConst is an integer constant, suffix included.
	IntConst
	// FloatConst is a decimal or hexadecimal floating constant, suffix included.
	FloatConst
	// CharConst is a character constant; Token.Content holds the decoded value.
	CharConst
	// StringLiteral is a string literal; Token.Content holds the decoded value.
	StringLiteral

	LSquare             // [
	RSquare             // ]
	LParen              // (
	RParen              // )
	LBrace              // {
	RBrace              // }
	Period              // .
	Ellipsis            // ...
	Amp                 // &
	AmpAmp              // &&
	AmpEqual            // &=
	Star                // *
	StarEqual           // *=
	Plus                // +
	PlusPlus            // ++
	PlusEqual           // +=
	Minus               // -
	Arrow               // ->
	MinusMinus          // --
	MinusEqual          // -=
	Tilde               // ~
	Exclaim             // !
	ExclaimEqual        // !=
	Slash               // /
	SlashEqual          // /=
	Percent             // %
	PercentEqual        // %=
	Less                // <
	LessLess            // <<
	LessEqual           // <=
	LessLessEqual       // <<=
	Greater             // >
	GreaterGreater      // >>
	GreaterEqual        // >=
	GreaterGreaterEqual // >>=
	Caret               // ^
	CaretEqual          // ^=
	Pipe                // |
	PipePipe            // ||
	PipeEqual           // |=
	Question            // ?
	Colon               // :
	ColonColon          // ::
	Semi                // ;
	Equal               // =
	EqualEqual          // ==
	Comma               // ,
	Hash                // #
	HashHash            // ##

	// Comment is emitted only when the preprocessor keeps comments.
	Comment
	// Newline appears only while a directive line is being read.
	Newline
	// HeaderName is the <...> operand of #include; Text excludes the brackets.
	HeaderName

	// Directive names. The preprocessor assigns them to the identifier after a
	// directive '#', and to __VA_ARGS__/__VA_OPT__ inside directive lines.
	PPDefine   // define
	PPVaArgs   // __VA_ARGS__
	PPVaOpt    // __VA_OPT__
	PPUndef    // undef
	PPIfdef    // ifdef
	PPIfndef   // ifndef
	PPElif     // elif
	PPElifdef  // elifdef
	PPElifndef // elifndef
	PPEndif    // endif
	PPInclude  // include
	PPLine     // line
	PPError    // error
	PPWarning  // warning
	PPPragma   // pragma
	PPEmbed    // embed

	kindCount
)

var kindNames = [kindCount]string{
	End: "End", Unknown: "Unknown",
	KwAlignas: "KwAlignas", KwAlignof: "KwAlignof", KwAuto: "KwAuto", KwBool: "KwBool",
	KwBreak: "KwBreak", KwCase: "KwCase", KwChar: "KwChar", KwConst: "KwConst",
	KwConstexpr: "KwConstexpr", KwContinue: "KwContinue", KwDefault: "KwDefault", KwDo: "KwDo",
	KwDouble: "KwDouble", KwElse: "KwElse", KwEnum: "KwEnum", KwExtern: "KwExtern",
	KwFalse: "KwFalse", KwFloat: "KwFloat", KwFor: "KwFor", KwGoto: "KwGoto", KwIf: "KwIf",
	KwInline: "KwInline", KwInt: "KwInt", KwLong: "KwLong", KwNullptr: "KwNullptr",
	KwRegister: "KwRegister", KwRestrict: "KwRestrict", KwReturn: "KwReturn", KwShort: "KwShort",
	KwSigned: "KwSigned", KwSizeof: "KwSizeof", KwStatic: "KwStatic", KwStaticAssert: "KwStaticAssert",
	KwStruct: "KwStruct", KwSwitch: "KwSwitch", KwThreadLocal: "KwThreadLocal", KwTrue: "KwTrue",
	KwTypedef: "KwTypedef", KwTypeof: "KwTypeof", KwTypeofUnqual: "KwTypeofUnqual", KwUnion: "KwUnion",
	KwUnsigned: "KwUnsigned", KwVoid: "KwVoid", KwVolatile: "KwVolatile", KwWhile: "KwWhile",
	KwAtomic: "KwAtomic", KwBitInt: "KwBitInt", KwComplex: "KwComplex", KwDecimal128: "KwDecimal128",
	KwDecimal32: "KwDecimal32", KwDecimal64: "KwDecimal64", KwGeneric: "KwGeneric",
	KwImaginary: "KwImaginary", KwNoreturn: "KwNoreturn",
	Ident: "Ident", IntConst: "IntConst", FloatConst: "FloatConst", CharConst: "CharConst",
	StringLiteral: "StringLiteral",
	LSquare: "LSquare", RSquare: "RSquare", LParen: "LParen", RParen: "RParen", LBrace: "LBrace",
	RBrace: "RBrace", Period: "Period", Ellipsis: "Ellipsis", Amp: "Amp", AmpAmp: "AmpAmp",
	AmpEqual: "AmpEqual", Star: "Star", StarEqual: "StarEqual", Plus: "Plus", PlusPlus: "PlusPlus",
	PlusEqual: "PlusEqual", Minus: "Minus", Arrow: "Arrow", MinusMinus: "MinusMinus",
	MinusEqual: "MinusEqual", Tilde: "Tilde", Exclaim: "Exclaim", ExclaimEqual: "ExclaimEqual",
	Slash: "Slash", SlashEqual: "SlashEqual", Percent: "Percent", PercentEqual: "PercentEqual",
	Less: "Less", LessLess: "LessLess", LessEqual: "LessEqual", LessLessEqual: "LessLessEqual",
	Greater: "Greater", GreaterGreater: "GreaterGreater", GreaterEqual: "GreaterEqual",
	GreaterGreaterEqual: "GreaterGreaterEqual", Caret: "Caret", CaretEqual: "CaretEqual",
	Pipe: "Pipe", PipePipe: "PipePipe", PipeEqual: "PipeEqual", Question: "Question",
	Colon: "Colon", ColonColon: "ColonColon", Semi: "Semi", Equal: "Equal", EqualEqual: "EqualEqual",
	Comma: "Comma", Hash: "Hash", HashHash: "HashHash",
	Comment: "Comment", Newline: "Newline", HeaderName: "HeaderName",
	PPDefine: "PPDefine", PPVaArgs: "PPVaArgs", PPVaOpt: "PPVaOpt", PPUndef: "PPUndef",
	PPIfdef: "PPIfdef", PPIfndef: "PPIfndef", PPElif: "PPElif", PPElifdef: "PPElifdef",
	PPElifndef: "PPElifndef", PPEndif: "PPEndif", PPInclude: "PPInclude", PPLine: "PPLine",
	PPError: "PPError", PPWarning: "PPWarning", PPPragma: "PPPragma", PPEmbed: "PPEmbed",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source text of punctuators, keywords and
// directive names, or "" for kinds whose text varies.
func (k Kind) Spelling() string {
	if s, ok := spellings[k]; ok {
		return s
	}
	return ""
}

// Describe is the human form used in "expected X" messages.
func (k Kind) Describe() string {
	switch k {
	case End:
		return "end of file"
	case Ident:
		return "identifier"
	case IntConst, FloatConst:
		return "number"
	case CharConst:
		return "character constant"
	case StringLiteral:
		return "string literal"
	}
	if s := k.Spelling(); s != "" {
		return s
	}
	return k.String()
}

func (k Kind) IsKeyword() bool {
	return k >= KwAlignas && k <= KwNoreturn
}

func (k Kind) IsPunct() bool {
	return k >= LSquare && k <= HashHash
}

func (k Kind) IsLiteral() bool {
	return k >= IntConst && k <= StringLiteral
}

func (k Kind) IsPPKeyword() bool {
	return k >= PPDefine && k <= PPEmbed
}
