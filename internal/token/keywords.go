package token

var keywords = map[string]Kind{
	"alignas":        KwAlignas,
	"_Alignas":       KwAlignas,
	"alignof":        KwAlignof,
	"_Alignof":       KwAlignof,
	"auto":           KwAuto,
	"bool":           KwBool,
	"_Bool":          KwBool,
	"break":          KwBreak,
	"case":           KwCase,
	"char":           KwChar,
	"const":          KwConst,
	"constexpr":      KwConstexpr,
	"continue":       KwContinue,
	"default":        KwDefault,
	"do":             KwDo,
	"double":         KwDouble,
	"else":           KwElse,
	"enum":           KwEnum,
	"extern":         KwExtern,
	"false":          KwFalse,
	"float":          KwFloat,
	"for":            KwFor,
	"goto":           KwGoto,
	"if":             KwIf,
	"inline":         KwInline,
	"int":            KwInt,
	"long":           KwLong,
	"nullptr":        KwNullptr,
	"register":       KwRegister,
	"restrict":       KwRestrict,
	"return":         KwReturn,
	"short":          KwShort,
	"signed":         KwSigned,
	"sizeof":         KwSizeof,
	"static":         KwStatic,
	"static_assert":  KwStaticAssert,
	"_Static_assert": KwStaticAssert,
	"struct":         KwStruct,
	"switch":         KwSwitch,
	"thread_local":   KwThreadLocal,
	"_Thread_local":  KwThreadLocal,
	"true":           KwTrue,
	"typedef":        KwTypedef,
	"typeof":         KwTypeof,
	"typeof_unqual":  KwTypeofUnqual,
	"union":          KwUnion,
	"unsigned":       KwUnsigned,
	"void":           KwVoid,
	"volatile":       KwVolatile,
	"while":          KwWhile,
	"_Atomic":        KwAtomic,
	"_BitInt":        KwBitInt,
	"_Complex":       KwComplex,
	"_Decimal128":    KwDecimal128,
	"_Decimal32":     KwDecimal32,
	"_Decimal64":     KwDecimal64,
	"_Generic":       KwGeneric,
	"_Imaginary":     KwImaginary,
	"_Noreturn":      KwNoreturn,
}

var punctuators = map[string]Kind{
	"[": LSquare, "]": RSquare, "(": LParen, ")": RParen, "{": LBrace, "}": RBrace,
	".": Period, "...": Ellipsis,
	"&": Amp, "&&": AmpAmp, "&=": AmpEqual,
	"*": Star, "*=": StarEqual,
	"+": Plus, "++": PlusPlus, "+=": PlusEqual,
	"-": Minus, "->": Arrow, "--": MinusMinus, "-=": MinusEqual,
	"~": Tilde, "!": Exclaim, "!=": ExclaimEqual,
	"/": Slash, "/=": SlashEqual, "%": Percent, "%=": PercentEqual,
	"<": Less, "<<": LessLess, "<=": LessEqual, "<<=": LessLessEqual,
	">": Greater, ">>": GreaterGreater, ">=": GreaterEqual, ">>=": GreaterGreaterEqual,
	"^": Caret, "^=": CaretEqual, "|": Pipe, "||": PipePipe, "|=": PipeEqual,
	"?": Question, ":": Colon, "::": ColonColon, ";": Semi,
	"=": Equal, "==": EqualEqual, ",": Comma, "#": Hash, "##": HashHash,
}

// ppKeywords are recognized only in directive position.
var ppKeywords = map[string]Kind{
	"define":      PPDefine,
	"__VA_ARGS__": PPVaArgs,
	"__VA_OPT__":  PPVaOpt,
	"undef":       PPUndef,
	"ifdef":       PPIfdef,
	"ifndef":      PPIfndef,
	"elif":        PPElif,
	"elifdef":     PPElifdef,
	"elifndef":    PPElifndef,
	"endif":       PPEndif,
	"include":     PPInclude,
	"line":        PPLine,
	"error":       PPError,
	"warning":     PPWarning,
	"pragma":      PPPragma,
	"embed":       PPEmbed,
}

var spellings = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords)+len(punctuators)+len(ppKeywords))
	for _, table := range []map[string]Kind{punctuators, ppKeywords, keywords} {
		for text, k := range table {
			// для ключевых слов с двумя написаниями берём современное (без '_')
			if prev, ok := out[k]; ok && prev[0] != '_' {
				continue
			}
			out[k] = text
		}
	}
	return out
}()

// LookupKeyword возвращает вид ключевого слова, если ident им является.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupPunct returns the punctuator kind for an exact spelling.
func LookupPunct(text string) (Kind, bool) {
	k, ok := punctuators[text]
	return k, ok
}

// LookupPPKeyword maps a directive name or __VA_ARGS__/__VA_OPT__ to its kind.
func LookupPPKeyword(ident string) (Kind, bool) {
	k, ok := ppKeywords[ident]
	return k, ok
}
